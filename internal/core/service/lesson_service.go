package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/planejaula/planejaula-api/internal/api/metrics"
	"github.com/planejaula/planejaula-api/internal/core/domain"
	"github.com/planejaula/planejaula-api/internal/core/ports"
)

// StatsCache abstracts the per-teacher stats cache (Redis). Cache failures are
// never fatal; the service falls back to recomputing from the repository.
type StatsCache interface {
	Get(ctx context.Context, teacherID string) (*ports.LessonStats, error)
	Set(ctx context.Context, teacherID string, stats *ports.LessonStats) error
	Invalidate(ctx context.Context, teacherID string) error
}

// LessonService implements the lesson planning use cases. Every operation is
// scoped to the calling teacher; the repository enforces the scope at the
// query level.
type LessonService struct {
	repo   ports.LessonRepository
	cache  StatsCache // optional, may be nil
	logger zerolog.Logger
}

func NewLessonService(repo ports.LessonRepository, cache StatsCache, logger zerolog.Logger) *LessonService {
	return &LessonService{repo: repo, cache: cache, logger: logger}
}

// Create persists a new lesson owned by teacherID. Any client-supplied teacher
// value never reaches this layer; status defaults to planned.
func (s *LessonService) Create(ctx context.Context, teacherID string, in ports.CreateLessonInput) (*domain.Lesson, error) {
	status := domain.LessonStatus(in.Status)
	if in.Status == "" {
		status = domain.StatusPlanned
	}

	now := time.Now().UTC()
	lesson := &domain.Lesson{
		Title:       in.Title,
		Subject:     in.Subject,
		Class:       in.Class,
		Date:        in.Date,
		Duration:    in.Duration,
		Objectives:  in.Objectives,
		Content:     in.Content,
		Methodology: in.Methodology,
		Resources:   in.Resources,
		Evaluation:  in.Evaluation,
		Homework:    in.Homework,
		Notes:       in.Notes,
		Status:      status,
		Teacher:     teacherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, lesson)
	if err != nil {
		s.logger.Error().Err(err).Str("teacher", teacherID).Msg("failed to create lesson")
		return nil, err
	}

	metrics.LessonsCreatedTotal.Inc()
	s.invalidateStats(ctx, teacherID)
	s.logger.Info().Str("lesson", created.ID).Str("teacher", teacherID).Msg("lesson created")
	return created, nil
}

// List returns the teacher's lessons matching filter, most recent date first.
func (s *LessonService) List(ctx context.Context, teacherID string, filter ports.ListLessonsFilter) ([]*domain.Lesson, error) {
	filter.TeacherID = teacherID
	return s.repo.List(ctx, filter)
}

func (s *LessonService) Get(ctx context.Context, teacherID, id string) (*domain.Lesson, error) {
	return s.repo.FindByID(ctx, teacherID, id)
}

// Update merges only the supplied fields into the stored lesson, re-validates
// the result and persists it. The owning teacher is never changeable.
func (s *LessonService) Update(ctx context.Context, teacherID, id string, in ports.UpdateLessonInput) (*domain.Lesson, error) {
	lesson, err := s.repo.FindByID(ctx, teacherID, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(lesson, in)
	lesson.Teacher = teacherID
	lesson.UpdatedAt = time.Now().UTC()

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, lesson)
	if err != nil {
		s.logger.Error().Err(err).Str("lesson", id).Str("teacher", teacherID).Msg("failed to update lesson")
		return nil, err
	}

	metrics.LessonsUpdatedTotal.Inc()
	s.invalidateStats(ctx, teacherID)
	return updated, nil
}

func (s *LessonService) Delete(ctx context.Context, teacherID, id string) error {
	if err := s.repo.Delete(ctx, teacherID, id); err != nil {
		return err
	}

	metrics.LessonsDeletedTotal.Inc()
	s.invalidateStats(ctx, teacherID)
	s.logger.Info().Str("lesson", id).Str("teacher", teacherID).Msg("lesson deleted")
	return nil
}

// Stats aggregates the teacher's lessons, consulting the cache first.
func (s *LessonService) Stats(ctx context.Context, teacherID string) (*ports.LessonStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, teacherID)
		if err != nil {
			s.logger.Warn().Err(err).Str("teacher", teacherID).Msg("stats cache lookup failed")
		} else if cached != nil {
			metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	stats, err := s.repo.Stats(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, teacherID, stats); err != nil {
			s.logger.Warn().Err(err).Str("teacher", teacherID).Msg("failed to cache stats")
		}
	}
	return stats, nil
}

func (s *LessonService) invalidateStats(ctx context.Context, teacherID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, teacherID); err != nil {
		s.logger.Warn().Err(err).Str("teacher", teacherID).Msg("failed to invalidate stats cache")
	}
}

func applyUpdate(l *domain.Lesson, in ports.UpdateLessonInput) {
	if in.Title != nil {
		l.Title = *in.Title
	}
	if in.Subject != nil {
		l.Subject = *in.Subject
	}
	if in.Class != nil {
		l.Class = *in.Class
	}
	if in.Date != nil {
		l.Date = *in.Date
	}
	if in.Duration != nil {
		l.Duration = *in.Duration
	}
	if in.Objectives != nil {
		l.Objectives = *in.Objectives
	}
	if in.Content != nil {
		l.Content = *in.Content
	}
	if in.Methodology != nil {
		l.Methodology = *in.Methodology
	}
	if in.Resources != nil {
		l.Resources = *in.Resources
	}
	if in.Evaluation != nil {
		l.Evaluation = *in.Evaluation
	}
	if in.Homework != nil {
		l.Homework = *in.Homework
	}
	if in.Notes != nil {
		l.Notes = *in.Notes
	}
	if in.Status != nil {
		l.Status = domain.LessonStatus(*in.Status)
	}
}
