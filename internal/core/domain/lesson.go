package domain

import (
	"errors"
	"strings"
	"time"
)

// LessonStatus represents the planning state of a lesson.
type LessonStatus string

const (
	StatusPlanned    LessonStatus = "planned"
	StatusInProgress LessonStatus = "in_progress"
	StatusCompleted  LessonStatus = "completed"
)

// MinDuration is the minimum accepted lesson duration in minutes.
const MinDuration = 15

var ErrLessonNotFound = errors.New("lesson not found")

// IsValid reports whether s is one of the known lesson statuses.
func (s LessonStatus) IsValid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidationError describes the first constraint a lesson violates.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Lesson is a single planned, ongoing or completed class session.
// Teacher is always set server-side from the authenticated caller.
type Lesson struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Subject     string       `json:"subject"`
	Class       string       `json:"class"`
	Date        time.Time    `json:"date"`
	Duration    int          `json:"duration"`
	Objectives  string       `json:"objectives"`
	Content     string       `json:"content"`
	Methodology string       `json:"methodology"`
	Resources   string       `json:"resources"`
	Evaluation  string       `json:"evaluation"`
	Homework    string       `json:"homework"`
	Notes       string       `json:"notes"`
	Status      LessonStatus `json:"status"`
	Teacher     string       `json:"teacher"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Validate checks the lesson against the model constraints and returns the
// first violation found. Called on create and after every partial update merge.
func (l *Lesson) Validate() error {
	switch {
	case strings.TrimSpace(l.Title) == "":
		return &ValidationError{Field: "title", Message: "title is required"}
	case strings.TrimSpace(l.Subject) == "":
		return &ValidationError{Field: "subject", Message: "subject is required"}
	case strings.TrimSpace(l.Class) == "":
		return &ValidationError{Field: "class", Message: "class is required"}
	case l.Date.IsZero():
		return &ValidationError{Field: "date", Message: "date is required"}
	case l.Duration < MinDuration:
		return &ValidationError{Field: "duration", Message: "duration must be at least 15 minutes"}
	case strings.TrimSpace(l.Objectives) == "":
		return &ValidationError{Field: "objectives", Message: "objectives are required"}
	case strings.TrimSpace(l.Content) == "":
		return &ValidationError{Field: "content", Message: "content is required"}
	case strings.TrimSpace(l.Methodology) == "":
		return &ValidationError{Field: "methodology", Message: "methodology is required"}
	case !l.Status.IsValid():
		return &ValidationError{Field: "status", Message: "status must be one of: planned, in_progress, completed"}
	}
	return nil
}
