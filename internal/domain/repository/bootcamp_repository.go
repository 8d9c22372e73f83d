package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlaunch/bootcamper/internal/domain/entity"
	"github.com/devlaunch/bootcamper/pkg/query"
)

// BootcampRepository defines persistence operations for bootcamps. Derived
// fields (averageCost, photo) have dedicated setters so updates to them bypass
// full-document writes.
type BootcampRepository interface {
	Create(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Bootcamp, error)
	// GetByOwner returns any bootcamp owned by the user, or nil when none exists.
	GetByOwner(ctx context.Context, userID primitive.ObjectID) (*entity.Bootcamp, error)
	List(ctx context.Context, opts query.Options) ([]entity.Bootcamp, int64, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// WithinRadius returns bootcamps whose location falls inside the spherical
	// cap centered at (lat, lng) with the given angular radius in radians.
	WithinRadius(ctx context.Context, lat, lng, radius float64) ([]entity.Bootcamp, error)
	SetAverageCost(ctx context.Context, id primitive.ObjectID, cost int) error
	SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error
}
