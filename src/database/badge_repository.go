package database

import (
	"context"
	"errors"
	"time"

	"Backend-Student-Tracker/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BadgeRepository จัดการ collection badges
type BadgeRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewBadgeRepository(coll *mongo.Collection) *BadgeRepository {
	return &BadgeRepository{coll: coll, timeout: defaultQueryTimeout}
}

func (r *BadgeRepository) List(ctx context.Context) ([]models.Badge, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	badges := []models.Badge{}
	if err := cursor.All(ctx, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *BadgeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Badge, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var badge models.Badge
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&badge)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

// FindByIDs ดึง badge หลายตัวพร้อมกัน; missing ids are skipped.
func (r *BadgeRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Badge, error) {
	if len(ids) == 0 {
		return []models.Badge{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	badges := []models.Badge{}
	if err := cursor.All(ctx, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *BadgeRepository) Insert(ctx context.Context, badge *models.Badge) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if badge.ID.IsZero() {
		badge.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, badge)
	return translateWriteError(err)
}

func (r *BadgeRepository) Save(ctx context.Context, badge *models.Badge) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": badge.ID}, badge)
	if err != nil {
		return translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BadgeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
