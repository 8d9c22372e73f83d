package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlaunch/bootcamper/internal/domain/entity"
	"github.com/devlaunch/bootcamper/pkg/query"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Course, error)
	List(ctx context.Context, opts query.Options) ([]entity.Course, int64, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error
	// AverageTuition aggregates the mean tuition over the bootcamp's courses.
	// ok is false when the bootcamp has no courses.
	AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (avg float64, ok bool, err error)
}
