package application

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlaunch/bootcamper/internal/domain/entity"
	"github.com/devlaunch/bootcamper/internal/domain/repository"
	"github.com/devlaunch/bootcamper/pkg/query"
)

// CourseService implements course CRUD. Every mutation recomputes the parent
// bootcamp's averageCost as an explicit follow-up call, not a hidden hook.
type CourseService struct {
	Courses   repository.CourseRepository
	Bootcamps repository.BootcampRepository
	Logger    *logrus.Logger
}

func NewCourseService(courses repository.CourseRepository, bootcamps repository.BootcampRepository, logger *logrus.Logger) *CourseService {
	return &CourseService{Courses: courses, Bootcamps: bootcamps, Logger: logger}
}

// List returns courses, optionally scoped to one bootcamp.
func (s *CourseService) List(ctx context.Context, bootcampID string, opts query.Options) ([]entity.Course, int64, query.Pagination, error) {
	if bootcampID != "" {
		oid, err := primitive.ObjectIDFromHex(bootcampID)
		if err != nil {
			return nil, 0, query.Pagination{}, ErrNotFound
		}
		opts.Conditions = append(opts.Conditions, query.Condition{Field: "bootcamp", Op: query.OpEq, Value: oid})
	}
	items, total, err := s.Courses.List(ctx, opts)
	if err != nil {
		return nil, 0, query.Pagination{}, err
	}
	return items, total, query.Paginate(opts.Page, opts.Limit, total), nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	c, err := s.Courses.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

type CourseInput struct {
	Title                string
	Description          string
	Weeks                string
	Tuition              *float64
	MinimumSkill         string
	ScholarshipAvailable *bool
}

// Create adds a course under a bootcamp. The acting user and the bootcamp id
// are injected server-side; creation requires owning the parent bootcamp or
// the admin role.
func (s *CourseService) Create(ctx context.Context, actor *entity.User, bootcampID string, in CourseInput) (*entity.Course, error) {
	boid, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, ErrNotFound
	}
	b, err := s.Bootcamps.GetByID(ctx, boid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.Owns(b.User) {
		return nil, ErrNotAuthorized
	}

	c := &entity.Course{
		Title:        in.Title,
		Description:  in.Description,
		Weeks:        in.Weeks,
		MinimumSkill: in.MinimumSkill,
		Bootcamp:     b.ID,
		User:         actor.ID,
	}
	if in.Tuition != nil {
		c.Tuition = *in.Tuition
	}
	if in.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *in.ScholarshipAvailable
	}

	if err := s.Courses.Create(ctx, c); err != nil {
		return nil, err
	}
	s.recomputeAverageCost(ctx, b.ID)
	return c, nil
}

// Update applies partial updates after the ownership check and recomputes the
// parent's averageCost.
func (s *CourseService) Update(ctx context.Context, actor *entity.User, id string, in CourseInput) (*entity.Course, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(c.User) {
		return nil, ErrNotAuthorized
	}

	if in.Title != "" {
		c.Title = in.Title
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.Weeks != "" {
		c.Weeks = in.Weeks
	}
	if in.MinimumSkill != "" {
		c.MinimumSkill = in.MinimumSkill
	}
	if in.Tuition != nil {
		c.Tuition = *in.Tuition
	}
	if in.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *in.ScholarshipAvailable
	}

	if err := s.Courses.Update(ctx, c); err != nil {
		return nil, err
	}
	s.recomputeAverageCost(ctx, c.Bootcamp)
	return c, nil
}

// Delete removes a course after the ownership check and recomputes the
// parent's averageCost.
func (s *CourseService) Delete(ctx context.Context, actor *entity.User, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(c.User) {
		return ErrNotAuthorized
	}
	if err := s.Courses.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.recomputeAverageCost(ctx, c.Bootcamp)
	return nil
}

// recomputeAverageCost stores the ceiling-to-nearest-10 mean tuition on the
// bootcamp. A bootcamp with no remaining courses gets its averageCost reset.
// Failures are logged and never fail the request that triggered them.
func (s *CourseService) recomputeAverageCost(ctx context.Context, bootcampID primitive.ObjectID) {
	avg, ok, err := s.Courses.AverageTuition(ctx, bootcampID)
	if err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", bootcampID.Hex()).Error("average cost aggregation failed")
		return
	}
	cost := 0
	if ok {
		cost = RoundCost(avg)
	}
	if err := s.Bootcamps.SetAverageCost(ctx, bootcampID, cost); err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", bootcampID.Hex()).Error("average cost update failed")
	}
}

// RoundCost rounds a mean tuition up to the nearest multiple of 10.
func RoundCost(avg float64) int {
	return int(math.Ceil(avg/10) * 10)
}
