package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planejaula/planejaula-api/internal/core/domain"
	"github.com/planejaula/planejaula-api/internal/core/ports"
)

const collectionLessons = "lessons"

// LessonRepository implements ports.LessonRepository using MongoDB. Every
// query carries a teacher filter, so foreign lesson ids are indistinguishable
// from absent ones.
type LessonRepository struct {
	col *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{col: db.Collection(collectionLessons)}
}

type lessonDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Subject     string             `bson:"subject"`
	Class       string             `bson:"class"`
	Date        time.Time          `bson:"date"`
	Duration    int                `bson:"duration"`
	Objectives  string             `bson:"objectives"`
	Content     string             `bson:"content"`
	Methodology string             `bson:"methodology"`
	Resources   string             `bson:"resources"`
	Evaluation  string             `bson:"evaluation"`
	Homework    string             `bson:"homework"`
	Notes       string             `bson:"notes"`
	Status      string             `bson:"status"`
	Teacher     primitive.ObjectID `bson:"teacher"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *lessonDoc) toDomain() *domain.Lesson {
	return &domain.Lesson{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Subject:     d.Subject,
		Class:       d.Class,
		Date:        d.Date,
		Duration:    d.Duration,
		Objectives:  d.Objectives,
		Content:     d.Content,
		Methodology: d.Methodology,
		Resources:   d.Resources,
		Evaluation:  d.Evaluation,
		Homework:    d.Homework,
		Notes:       d.Notes,
		Status:      domain.LessonStatus(d.Status),
		Teacher:     d.Teacher.Hex(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func fromDomain(l *domain.Lesson) (*lessonDoc, error) {
	teacher, err := primitive.ObjectIDFromHex(l.Teacher)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher id: %w", err)
	}

	doc := &lessonDoc{
		Title:       l.Title,
		Subject:     l.Subject,
		Class:       l.Class,
		Date:        l.Date,
		Duration:    l.Duration,
		Objectives:  l.Objectives,
		Content:     l.Content,
		Methodology: l.Methodology,
		Resources:   l.Resources,
		Evaluation:  l.Evaluation,
		Homework:    l.Homework,
		Notes:       l.Notes,
		Status:      string(l.Status),
		Teacher:     teacher,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.ID != "" {
		oid, err := primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid lesson id: %w", err)
		}
		doc.ID = oid
	}
	return doc, nil
}

// scopeFilter builds the base filter every lesson query starts from.
// A malformed id short-circuits to ErrLessonNotFound, keeping not-found
// semantics uniform.
func scopeFilter(teacherID, id string) (bson.M, error) {
	teacher, err := primitive.ObjectIDFromHex(teacherID)
	if err != nil {
		return nil, domain.ErrLessonNotFound
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLessonNotFound
	}
	return bson.M{"_id": oid, "teacher": teacher}, nil
}

func (r *LessonRepository) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	doc, err := fromDomain(lesson)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert lesson: %w", err)
	}

	created := *lesson
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// List returns the teacher's lessons matching filter, sorted by date descending.
func (r *LessonRepository) List(ctx context.Context, filter ports.ListLessonsFilter) ([]*domain.Lesson, error) {
	teacher, err := primitive.ObjectIDFromHex(filter.TeacherID)
	if err != nil {
		return nil, domain.ErrLessonNotFound
	}

	query := bson.M{"teacher": teacher}
	if filter.Subject != "" {
		query["subject"] = filter.Subject
	}
	if filter.Class != "" {
		query["class"] = filter.Class
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if !filter.DateFrom.IsZero() || !filter.DateTo.IsZero() {
		dateRange := bson.M{}
		if !filter.DateFrom.IsZero() {
			dateRange["$gte"] = filter.DateFrom
		}
		if !filter.DateTo.IsZero() {
			dateRange["$lte"] = filter.DateTo
		}
		query["date"] = dateRange
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer cur.Close(ctx)

	lessons := make([]*domain.Lesson, 0)
	for cur.Next(ctx) {
		var doc lessonDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode lesson: %w", err)
		}
		lessons = append(lessons, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

func (r *LessonRepository) FindByID(ctx context.Context, teacherID, id string) (*domain.Lesson, error) {
	filter, err := scopeFilter(teacherID, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc lessonDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the mutable fields of the lesson matched by id and teacher.
// The teacher field itself is part of the filter, never of the update.
func (r *LessonRepository) Update(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	filter, err := scopeFilter(lesson.Teacher, lesson.ID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":       lesson.Title,
		"subject":     lesson.Subject,
		"class":       lesson.Class,
		"date":        lesson.Date,
		"duration":    lesson.Duration,
		"objectives":  lesson.Objectives,
		"content":     lesson.Content,
		"methodology": lesson.Methodology,
		"resources":   lesson.Resources,
		"evaluation":  lesson.Evaluation,
		"homework":    lesson.Homework,
		"notes":       lesson.Notes,
		"status":      string(lesson.Status),
		"updated_at":  lesson.UpdatedAt,
	}}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrLessonNotFound
	}
	return lesson, nil
}

func (r *LessonRepository) Delete(ctx context.Context, teacherID, id string) error {
	filter, err := scopeFilter(teacherID, id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}

// Stats aggregates the teacher's lessons: total count, per-status grouping and
// the cardinalities of distinct subjects and classes.
func (r *LessonRepository) Stats(ctx context.Context, teacherID string) (*ports.LessonStats, error) {
	teacher, err := primitive.ObjectIDFromHex(teacherID)
	if err != nil {
		return nil, domain.ErrLessonNotFound
	}
	match := bson.M{"teacher": teacher}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("count lessons: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate lessons by status: %w", err)
	}
	defer cur.Close(ctx)

	byStatus := make([]ports.StatusCount, 0)
	for cur.Next(ctx) {
		var bucket struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&bucket); err != nil {
			return nil, fmt.Errorf("decode status bucket: %w", err)
		}
		byStatus = append(byStatus, ports.StatusCount{Status: bucket.Status, Count: bucket.Count})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("aggregate lessons by status: %w", err)
	}

	subjects, err := r.col.Distinct(ctx, "subject", match)
	if err != nil {
		return nil, fmt.Errorf("distinct subjects: %w", err)
	}
	classes, err := r.col.Distinct(ctx, "class", match)
	if err != nil {
		return nil, fmt.Errorf("distinct classes: %w", err)
	}

	return &ports.LessonStats{
		Total:    total,
		ByStatus: byStatus,
		Subjects: len(subjects),
		Classes:  len(classes),
	}, nil
}

// EnsureIndexes creates the indexes backing teacher-scoped listing and the
// subject/class filters.
func (r *LessonRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "teacher", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "subject", Value: 1}, {Key: "class", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
