package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devlaunch/bootcamper/internal/domain/entity"
	"github.com/devlaunch/bootcamper/internal/domain/repository"
	"github.com/devlaunch/bootcamper/pkg/query"
)

const bootcampsCollection = "bootcamps"

type BootcampRepository struct {
	col *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{col: db.Collection(bootcampsCollection)}
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, b)
	return err
}

func (r *BootcampRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BootcampRepository) GetByOwner(ctx context.Context, userID primitive.ObjectID) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BootcampRepository) List(ctx context.Context, opts query.Options) ([]entity.Bootcamp, int64, error) {
	filter := buildFilter(opts.Conditions)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, buildFindOptions(opts))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []entity.Bootcamp{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BootcampRepository) WithinRadius(ctx context.Context, lat, lng, radius float64) ([]entity.Bootcamp, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radius},
			},
		},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []entity.Bootcamp{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id primitive.ObjectID, cost int) error {
	update := bson.M{"$set": bson.M{"averageCost": cost}}
	if cost == 0 {
		update = bson.M{"$unset": bson.M{"averageCost": ""}}
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *BootcampRepository) SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"photo": filename}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
