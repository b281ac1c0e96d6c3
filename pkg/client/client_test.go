package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, New(Config{BaseURL: srv.URL})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestClient_Register_StoresToken(t *testing.T) {
	_, cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/register" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "a@x.com" {
			t.Fatalf("unexpected body: %+v", req)
		}
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"success": true,
			"token":   "token123",
			"user":    map[string]any{"id": "user-1", "email": req.Email, "role": "teacher"},
		})
	})

	user, err := cli.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "a@x.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID != "user-1" || user.Role != "teacher" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if cli.Token() != "token123" {
		t.Fatalf("token not stored: %q", cli.Token())
	}
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	_, cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "email or password incorrect",
		})
	})

	_, err := cli.Login(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !strings.Contains(err.Error(), "email or password incorrect") {
		t.Fatalf("server message not surfaced: %v", err)
	}
	if cli.Token() != "" {
		t.Fatalf("token should stay empty after failed login")
	}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	_, cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]any{"id": "user-1"},
		})
	})
	cli.SetToken("token123")

	if _, err := cli.Profile(context.Background()); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if gotAuth != "Bearer token123" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
}

func TestClient_ListLessons_QueryParams(t *testing.T) {
	_, cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("subject") != "Math" || q.Get("startDate") != "2026-03-01" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Has("class") || q.Has("endDate") {
			t.Fatalf("zero-value filters must be omitted: %s", r.URL.RawQuery)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"count":   1,
			"lessons": []map[string]any{{"id": "l1", "title": "Fractions"}},
		})
	})
	cli.SetToken("token123")

	lessons, err := cli.ListLessons(context.Background(), ListFilter{
		Subject:   "Math",
		StartDate: "2026-03-01",
	})
	if err != nil {
		t.Fatalf("list lessons: %v", err)
	}
	if len(lessons) != 1 || lessons[0].ID != "l1" {
		t.Fatalf("unexpected lessons: %+v", lessons)
	}
}

func TestClient_GetLesson_NotFound(t *testing.T) {
	_, cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "lesson not found",
		})
	})
	cli.SetToken("token123")

	_, err := cli.GetLesson(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_UpdateLesson_SendsOnlySetFields(t *testing.T) {
	_, cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/lessons/l1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["title"] != "Revised" {
			t.Fatalf("title missing: %+v", body)
		}
		if _, present := body["duration"]; present {
			t.Fatalf("nil fields must be omitted: %+v", body)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"lesson":  map[string]any{"id": "l1", "title": "Revised"},
		})
	})
	cli.SetToken("token123")

	title := "Revised"
	lesson, err := cli.UpdateLesson(context.Background(), "l1", LessonUpdate{Title: &title})
	if err != nil {
		t.Fatalf("update lesson: %v", err)
	}
	if lesson.Title != "Revised" {
		t.Fatalf("unexpected lesson: %+v", lesson)
	}
}

func TestClient_Stats(t *testing.T) {
	_, cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/lessons/stats" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"stats": map[string]any{
				"total":    3,
				"byStatus": []map[string]any{{"status": "planned", "count": 2}},
				"subjects": 2,
				"classes":  1,
			},
		})
	})
	cli.SetToken("token123")

	stats, err := cli.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || len(stats.ByStatus) != 1 || stats.ByStatus[0].Status != "planned" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestClient_ServerErrorMapping(t *testing.T) {
	_, cli := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "failed to create lesson",
			"error":   "duration must be at least 15 minutes",
		})
	})
	cli.SetToken("token123")

	_, err := cli.CreateLesson(context.Background(), LessonRequest{Title: "T"})
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to create lesson") {
		t.Fatalf("server message not surfaced: %v", err)
	}
}
