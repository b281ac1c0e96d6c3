// Package client provides a typed Go client for the PlanejAula API. It plays
// the role of the frontend's data-fetching layer: it holds the session token
// obtained from register/login and attaches it to every protected call.
package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config controls client construction.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a thread-safe PlanejAula API client.
type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

// New returns a Client for the given base URL.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{http: cli}
}

// SetToken replaces the stored session token, e.g. when restoring a session
// persisted by the caller.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Token returns the current session token ("" when logged out).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) request(ctx context.Context, authed bool) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if authed {
		if token := c.Token(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
	}
	return req
}

// Register creates an account and stores the returned session token.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	var out authEnvelope
	resp, err := c.request(ctx, false).
		SetBody(in).
		SetResult(&out).
		Post("/api/auth/register")
	if err != nil {
		return nil, fmt.Errorf("register request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	c.SetToken(out.Token)
	return out.User, nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out authEnvelope
	resp, err := c.request(ctx, false).
		SetBody(LoginRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	c.SetToken(out.Token)
	return out.User, nil
}

// Profile returns the authenticated user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out profileEnvelope
	resp, err := c.request(ctx, true).
		SetResult(&out).
		Get("/api/auth/profile")
	if err != nil {
		return nil, fmt.Errorf("profile request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return out.User, nil
}

// CreateLesson creates a new lesson for the authenticated teacher.
func (c *Client) CreateLesson(ctx context.Context, in LessonRequest) (*Lesson, error) {
	var out lessonEnvelope
	resp, err := c.request(ctx, true).
		SetBody(in).
		SetResult(&out).
		Post("/api/lessons")
	if err != nil {
		return nil, fmt.Errorf("create lesson request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return out.Lesson, nil
}

// ListLessons returns the teacher's lessons, optionally narrowed by filter.
func (c *Client) ListLessons(ctx context.Context, filter ListFilter) ([]Lesson, error) {
	var out listEnvelope
	resp, err := c.request(ctx, true).
		SetQueryParams(filter.queryParams()).
		SetResult(&out).
		Get("/api/lessons")
	if err != nil {
		return nil, fmt.Errorf("list lessons request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return out.Lessons, nil
}

// GetLesson fetches a single lesson by id.
func (c *Client) GetLesson(ctx context.Context, id string) (*Lesson, error) {
	var out lessonEnvelope
	resp, err := c.request(ctx, true).
		SetResult(&out).
		Get("/api/lessons/" + id)
	if err != nil {
		return nil, fmt.Errorf("get lesson request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return out.Lesson, nil
}

// UpdateLesson applies a partial update; only non-nil fields change.
func (c *Client) UpdateLesson(ctx context.Context, id string, in LessonUpdate) (*Lesson, error) {
	var out lessonEnvelope
	resp, err := c.request(ctx, true).
		SetBody(in).
		SetResult(&out).
		Put("/api/lessons/" + id)
	if err != nil {
		return nil, fmt.Errorf("update lesson request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return out.Lesson, nil
}

// DeleteLesson removes a lesson.
func (c *Client) DeleteLesson(ctx context.Context, id string) error {
	resp, err := c.request(ctx, true).
		Delete("/api/lessons/" + id)
	if err != nil {
		return fmt.Errorf("delete lesson request: %w", err)
	}
	return mapHTTPError(resp)
}

// Stats returns the aggregate statistics for the authenticated teacher.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out statsEnvelope
	resp, err := c.request(ctx, true).
		SetResult(&out).
		Get("/api/lessons/stats")
	if err != nil {
		return nil, fmt.Errorf("stats request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return out.Stats, nil
}
