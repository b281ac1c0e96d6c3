package ports

import (
	"context"
	"time"

	"github.com/planejaula/planejaula-api/internal/core/domain"
)

// CreateLessonInput carries all client-supplied fields for a new lesson.
// The owning teacher never comes from the client.
type CreateLessonInput struct {
	Title       string
	Subject     string
	Class       string
	Date        time.Time
	Duration    int
	Objectives  string
	Content     string
	Methodology string
	Resources   string
	Evaluation  string
	Homework    string
	Notes       string
	Status      string // optional, defaults to planned
}

// UpdateLessonInput carries a partial lesson update. Nil fields are left
// untouched; the merged result is re-validated before persisting.
type UpdateLessonInput struct {
	Title       *string
	Subject     *string
	Class       *string
	Date        *time.Time
	Duration    *int
	Objectives  *string
	Content     *string
	Methodology *string
	Resources   *string
	Evaluation  *string
	Homework    *string
	Notes       *string
	Status      *string
}

// LessonService defines the lesson planning use cases, all scoped to the
// authenticated teacher.
type LessonService interface {
	Create(ctx context.Context, teacherID string, in CreateLessonInput) (*domain.Lesson, error)
	List(ctx context.Context, teacherID string, filter ListLessonsFilter) ([]*domain.Lesson, error)
	Get(ctx context.Context, teacherID, id string) (*domain.Lesson, error)
	Update(ctx context.Context, teacherID, id string, in UpdateLessonInput) (*domain.Lesson, error)
	Delete(ctx context.Context, teacherID, id string) error
	Stats(ctx context.Context, teacherID string) (*LessonStats, error)
}
