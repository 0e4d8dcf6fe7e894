package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"intervox/internal/model"
)

// RoleRepo stores reusable role profiles, keyed by slug.
type RoleRepo interface {
	Upsert(ctx context.Context, profile *model.RoleProfile) error
	GetBySlug(ctx context.Context, slug string) (*model.RoleProfile, error)
	List(ctx context.Context) ([]*model.RoleProfile, error)
}

type roleRepo struct {
	collection *mongo.Collection
}

// NewRoleRepo creates a new role repository.
func NewRoleRepo(db *mongo.Database) RoleRepo {
	return &roleRepo{
		collection: db.Collection("roles"),
	}
}

func (r *roleRepo) Upsert(ctx context.Context, profile *model.RoleProfile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"slug": profile.Slug}, profile, opts)
	return err
}

func (r *roleRepo) GetBySlug(ctx context.Context, slug string) (*model.RoleProfile, error) {
	var profile model.RoleProfile
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *roleRepo) List(ctx context.Context) ([]*model.RoleProfile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*model.RoleProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
