package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"intervox/internal/model"
)

// EvaluationRepo stores scored answers. Records are append-only and
// listed in insertion order.
type EvaluationRepo interface {
	Insert(ctx context.Context, rec *model.EvaluationRecord) error
	ListAll(ctx context.Context) ([]*model.EvaluationRecord, error)
	ListByRoom(ctx context.Context, room string) ([]*model.EvaluationRecord, error)
}

type evaluationRepo struct {
	collection *mongo.Collection
}

// NewEvaluationRepo creates a new evaluation repository.
func NewEvaluationRepo(db *mongo.Database) EvaluationRepo {
	return &evaluationRepo{
		collection: db.Collection("evaluations"),
	}
}

func (r *evaluationRepo) Insert(ctx context.Context, rec *model.EvaluationRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, rec)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid.Hex()
	}
	return nil
}

// ListAll returns every record in natural (insertion) order.
func (r *evaluationRepo) ListAll(ctx context.Context) ([]*model.EvaluationRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.EvaluationRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *evaluationRepo) ListByRoom(ctx context.Context, room string) ([]*model.EvaluationRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"room": room})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.EvaluationRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
