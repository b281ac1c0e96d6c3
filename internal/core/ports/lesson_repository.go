package ports

import (
	"context"
	"time"

	"github.com/planejaula/planejaula-api/internal/core/domain"
)

// ListLessonsFilter narrows a lesson listing. TeacherID is always enforced by
// the service layer; the remaining fields are optional exact-match filters and
// an inclusive date range.
type ListLessonsFilter struct {
	TeacherID string
	Subject   string
	Class     string
	Status    string
	DateFrom  time.Time // optional: date >= DateFrom
	DateTo    time.Time // optional: date <= DateTo
}

// StatusCount is one bucket of the per-status lesson grouping.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// LessonStats aggregates a teacher's lessons.
type LessonStats struct {
	Total    int64         `json:"total"`
	ByStatus []StatusCount `json:"byStatus"`
	Subjects int           `json:"subjects"`
	Classes  int           `json:"classes"`
}

// LessonRepository defines persistence operations for lessons. Every lookup
// and mutation is filtered by the owning teacher at the query level, so a
// foreign lesson id behaves exactly like an absent one.
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	// List returns lessons matching filter, ordered by date descending.
	List(ctx context.Context, filter ListLessonsFilter) ([]*domain.Lesson, error)
	FindByID(ctx context.Context, teacherID, id string) (*domain.Lesson, error)
	// Update replaces the mutable fields of the lesson identified by
	// lesson.ID and lesson.Teacher. Returns domain.ErrLessonNotFound when no
	// document matches.
	Update(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	Delete(ctx context.Context, teacherID, id string) error
	Stats(ctx context.Context, teacherID string) (*LessonStats, error)
}
