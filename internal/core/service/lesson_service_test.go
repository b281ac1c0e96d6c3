package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/planejaula/planejaula-api/internal/core/domain"
	"github.com/planejaula/planejaula-api/internal/core/ports"
)

type stubLessonRepo struct {
	lessons map[string]*domain.Lesson
	nextID  int
}

func newStubLessonRepo() *stubLessonRepo {
	return &stubLessonRepo{lessons: make(map[string]*domain.Lesson)}
}

func cloneLesson(l *domain.Lesson) *domain.Lesson {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}

func (r *stubLessonRepo) Create(_ context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	r.nextID++
	created := cloneLesson(lesson)
	created.ID = fmt.Sprintf("lesson-%d", r.nextID)
	r.lessons[created.ID] = cloneLesson(created)
	return created, nil
}

func (r *stubLessonRepo) List(_ context.Context, filter ports.ListLessonsFilter) ([]*domain.Lesson, error) {
	out := make([]*domain.Lesson, 0)
	for _, l := range r.lessons {
		if l.Teacher != filter.TeacherID {
			continue
		}
		if filter.Subject != "" && l.Subject != filter.Subject {
			continue
		}
		if filter.Class != "" && l.Class != filter.Class {
			continue
		}
		if filter.Status != "" && string(l.Status) != filter.Status {
			continue
		}
		if !filter.DateFrom.IsZero() && l.Date.Before(filter.DateFrom) {
			continue
		}
		if !filter.DateTo.IsZero() && l.Date.After(filter.DateTo) {
			continue
		}
		out = append(out, cloneLesson(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubLessonRepo) FindByID(_ context.Context, teacherID, id string) (*domain.Lesson, error) {
	l, ok := r.lessons[id]
	if !ok || l.Teacher != teacherID {
		return nil, domain.ErrLessonNotFound
	}
	return cloneLesson(l), nil
}

func (r *stubLessonRepo) Update(_ context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	existing, ok := r.lessons[lesson.ID]
	if !ok || existing.Teacher != lesson.Teacher {
		return nil, domain.ErrLessonNotFound
	}
	r.lessons[lesson.ID] = cloneLesson(lesson)
	return cloneLesson(lesson), nil
}

func (r *stubLessonRepo) Delete(_ context.Context, teacherID, id string) error {
	l, ok := r.lessons[id]
	if !ok || l.Teacher != teacherID {
		return domain.ErrLessonNotFound
	}
	delete(r.lessons, id)
	return nil
}

func (r *stubLessonRepo) Stats(_ context.Context, teacherID string) (*ports.LessonStats, error) {
	byStatus := make(map[string]int64)
	subjects := make(map[string]struct{})
	classes := make(map[string]struct{})
	var total int64
	for _, l := range r.lessons {
		if l.Teacher != teacherID {
			continue
		}
		total++
		byStatus[string(l.Status)]++
		subjects[l.Subject] = struct{}{}
		classes[l.Class] = struct{}{}
	}

	stats := &ports.LessonStats{Total: total, Subjects: len(subjects), Classes: len(classes)}
	for status, count := range byStatus {
		stats.ByStatus = append(stats.ByStatus, ports.StatusCount{Status: status, Count: count})
	}
	return stats, nil
}

// stubStatsCache records calls so invalidation behavior can be asserted.
type stubStatsCache struct {
	stored      map[string]*ports.LessonStats
	gets, sets  int
	invalidated int
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{stored: make(map[string]*ports.LessonStats)}
}

func (c *stubStatsCache) Get(_ context.Context, teacherID string) (*ports.LessonStats, error) {
	c.gets++
	return c.stored[teacherID], nil
}

func (c *stubStatsCache) Set(_ context.Context, teacherID string, stats *ports.LessonStats) error {
	c.sets++
	c.stored[teacherID] = stats
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context, teacherID string) error {
	c.invalidated++
	delete(c.stored, teacherID)
	return nil
}

func newLessonService(repo ports.LessonRepository, cache StatsCache) *LessonService {
	return NewLessonService(repo, cache, zerolog.Nop())
}

func createInput() ports.CreateLessonInput {
	return ports.CreateLessonInput{
		Title:       "Fractions",
		Subject:     "Math",
		Class:       "5A",
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Duration:    50,
		Objectives:  "o",
		Content:     "c",
		Methodology: "m",
	}
}

func TestLessonService_Create_DefaultsAndOwnership(t *testing.T) {
	svc := newLessonService(newStubLessonRepo(), nil)

	lesson, err := svc.Create(context.Background(), "teacher-1", createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if lesson.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if lesson.Status != domain.StatusPlanned {
		t.Fatalf("expected default status planned, got %s", lesson.Status)
	}
	if lesson.Teacher != "teacher-1" {
		t.Fatalf("expected teacher binding, got %s", lesson.Teacher)
	}
	if lesson.CreatedAt.IsZero() || lesson.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestLessonService_Create_DurationBelowMinimum(t *testing.T) {
	svc := newLessonService(newStubLessonRepo(), nil)

	in := createInput()
	in.Duration = 14
	_, err := svc.Create(context.Background(), "teacher-1", in)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "duration" {
		t.Fatalf("expected duration violation, got %q", ve.Field)
	}
}

func TestLessonService_Create_ReportsFirstViolation(t *testing.T) {
	svc := newLessonService(newStubLessonRepo(), nil)

	in := createInput()
	in.Title = ""
	in.Objectives = ""
	_, err := svc.Create(context.Background(), "teacher-1", in)
	if err == nil || err.Error() != "title is required" {
		t.Fatalf("expected first violation message, got %v", err)
	}
}

func TestLessonService_CreateThenGet_RoundTrip(t *testing.T) {
	svc := newLessonService(newStubLessonRepo(), nil)

	created, err := svc.Create(context.Background(), "teacher-1", createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	fetched, err := svc.Get(context.Background(), "teacher-1", created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if *fetched != *created {
		t.Fatalf("fetched lesson differs from created:\n%+v\n%+v", fetched, created)
	}
}

func TestLessonService_CrossTeacherIsNotFound(t *testing.T) {
	repo := newStubLessonRepo()
	svc := newLessonService(repo, nil)

	created, err := svc.Create(context.Background(), "teacher-a", createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), "teacher-b", created.ID); !errors.Is(err, domain.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound on cross-teacher get, got %v", err)
	}

	title := "hijack"
	if _, err := svc.Update(context.Background(), "teacher-b", created.ID, ports.UpdateLessonInput{Title: &title}); !errors.Is(err, domain.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound on cross-teacher update, got %v", err)
	}

	if err := svc.Delete(context.Background(), "teacher-b", created.ID); !errors.Is(err, domain.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound on cross-teacher delete, got %v", err)
	}

	// The owning teacher still sees the untouched lesson.
	lesson, err := svc.Get(context.Background(), "teacher-a", created.ID)
	if err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if lesson.Title != "Fractions" {
		t.Fatalf("lesson mutated across teacher boundary: %+v", lesson)
	}
}

func TestLessonService_Update_PartialMerge(t *testing.T) {
	svc := newLessonService(newStubLessonRepo(), nil)

	created, err := svc.Create(context.Background(), "teacher-1", createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "Decimals"
	status := "completed"
	updated, err := svc.Update(context.Background(), "teacher-1", created.ID, ports.UpdateLessonInput{
		Title:  &title,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Decimals" || updated.Status != domain.StatusCompleted {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Subject != created.Subject || updated.Duration != created.Duration {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance")
	}
}

func TestLessonService_Update_RevalidatesMergedResult(t *testing.T) {
	svc := newLessonService(newStubLessonRepo(), nil)

	created, err := svc.Create(context.Background(), "teacher-1", createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	duration := 10
	_, err = svc.Update(context.Background(), "teacher-1", created.ID, ports.UpdateLessonInput{Duration: &duration})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "duration" {
		t.Fatalf("expected duration ValidationError, got %v", err)
	}

	// The stored lesson must be unchanged after the rejected update.
	lesson, err := svc.Get(context.Background(), "teacher-1", created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if lesson.Duration != 50 {
		t.Fatalf("rejected update leaked into store: %+v", lesson)
	}
}

func TestLessonService_List_FiltersAndOrder(t *testing.T) {
	svc := newLessonService(newStubLessonRepo(), nil)
	ctx := context.Background()

	mkLesson := func(subject string, day int) {
		in := createInput()
		in.Subject = subject
		in.Date = time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
		if _, err := svc.Create(ctx, "teacher-1", in); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	mkLesson("Math", 1)
	mkLesson("History", 5)
	mkLesson("Math", 10)

	lessons, err := svc.List(ctx, "teacher-1", ports.ListLessonsFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(lessons))
	}
	for i := 1; i < len(lessons); i++ {
		if lessons[i].Date.After(lessons[i-1].Date) {
			t.Fatalf("lessons not in descending date order")
		}
	}

	bySubject, err := svc.List(ctx, "teacher-1", ports.ListLessonsFilter{Subject: "Math"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bySubject) != 2 {
		t.Fatalf("expected 2 math lessons, got %d", len(bySubject))
	}

	ranged, err := svc.List(ctx, "teacher-1", ports.ListLessonsFilter{
		DateFrom: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("expected 2 lessons in inclusive range, got %d", len(ranged))
	}
}

func TestLessonService_Stats_Grouping(t *testing.T) {
	svc := newLessonService(newStubLessonRepo(), nil)
	ctx := context.Background()

	mk := func(status string) {
		in := createInput()
		in.Status = status
		if _, err := svc.Create(ctx, "teacher-1", in); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	mk("planned")
	mk("planned")
	mk("completed")

	stats, err := svc.Stats(ctx, "teacher-1")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	counts := make(map[string]int64)
	for _, b := range stats.ByStatus {
		counts[b.Status] = b.Count
	}
	if counts["planned"] != 2 || counts["completed"] != 1 {
		t.Fatalf("unexpected byStatus: %+v", stats.ByStatus)
	}
	if stats.Subjects != 1 || stats.Classes != 1 {
		t.Fatalf("expected 1 distinct subject and class, got %d/%d", stats.Subjects, stats.Classes)
	}
}

func TestLessonService_Stats_CacheHit(t *testing.T) {
	repo := newStubLessonRepo()
	cache := newStubStatsCache()
	svc := newLessonService(repo, cache)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "teacher-1", createInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := svc.Stats(ctx, "teacher-1")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected stats to be cached, sets=%d", cache.sets)
	}

	second, err := svc.Stats(ctx, "teacher-1")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if second.Total != first.Total {
		t.Fatalf("cache returned different stats")
	}
	if cache.sets != 1 {
		t.Fatalf("expected second call to hit the cache, sets=%d", cache.sets)
	}
}

func TestLessonService_Mutations_InvalidateCache(t *testing.T) {
	repo := newStubLessonRepo()
	cache := newStubStatsCache()
	svc := newLessonService(repo, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, "teacher-1", createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected create to invalidate cache, got %d", cache.invalidated)
	}

	title := "Decimals"
	if _, err := svc.Update(ctx, "teacher-1", created.ID, ports.UpdateLessonInput{Title: &title}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if cache.invalidated != 2 {
		t.Fatalf("expected update to invalidate cache, got %d", cache.invalidated)
	}

	if err := svc.Delete(ctx, "teacher-1", created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if cache.invalidated != 3 {
		t.Fatalf("expected delete to invalidate cache, got %d", cache.invalidated)
	}
}
