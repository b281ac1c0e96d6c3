package handler

import (
	"time"

	"github.com/planejaula/planejaula-api/internal/core/domain"
	"github.com/planejaula/planejaula-api/internal/core/ports"
)

// failureResponse is the envelope returned on every non-2xx response.
// Error carries the underlying detail on server errors only.
type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// messageResponse is the envelope for mutations that return no entity.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	School   string `json:"school"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

type profileResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// --- Lessons ---

// createLessonRequest carries the client-supplied lesson fields. A teacher
// field in the payload is deliberately not bound; ownership always comes from
// the authenticated caller.
type createLessonRequest struct {
	Title       string `json:"title"       validate:"required"`
	Subject     string `json:"subject"     validate:"required"`
	Class       string `json:"class"       validate:"required"`
	Date        string `json:"date"        validate:"required"`
	Duration    int    `json:"duration"    validate:"required,gte=15"`
	Objectives  string `json:"objectives"  validate:"required"`
	Content     string `json:"content"     validate:"required"`
	Methodology string `json:"methodology" validate:"required"`
	Resources   string `json:"resources"`
	Evaluation  string `json:"evaluation"`
	Homework    string `json:"homework"`
	Notes       string `json:"notes"`
	Status      string `json:"status"      validate:"omitempty,oneof=planned in_progress completed"`
}

// updateLessonRequest is the partial-update payload; nil fields stay untouched.
type updateLessonRequest struct {
	Title       *string `json:"title"`
	Subject     *string `json:"subject"`
	Class       *string `json:"class"`
	Date        *string `json:"date"`
	Duration    *int    `json:"duration"    validate:"omitempty,gte=15"`
	Objectives  *string `json:"objectives"`
	Content     *string `json:"content"`
	Methodology *string `json:"methodology"`
	Resources   *string `json:"resources"`
	Evaluation  *string `json:"evaluation"`
	Homework    *string `json:"homework"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"      validate:"omitempty,oneof=planned in_progress completed"`
}

type lessonResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Lesson  *domain.Lesson `json:"lesson"`
}

type listLessonsResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Lessons []*domain.Lesson `json:"lessons"`
}

type statsResponse struct {
	Success bool               `json:"success"`
	Stats   *ports.LessonStats `json:"stats"`
}

// dateFormats are the accepted wire formats for lesson dates and the
// startDate/endDate query parameters.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
