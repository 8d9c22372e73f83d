package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlaunch/bootcamper/internal/domain/entity"
	"github.com/devlaunch/bootcamper/internal/domain/repository"
	"github.com/devlaunch/bootcamper/internal/infrastructure/search"
	"github.com/devlaunch/bootcamper/internal/infrastructure/storage"
	"github.com/devlaunch/bootcamper/pkg/geocode"
	"github.com/devlaunch/bootcamper/pkg/query"
)

// earthRadiusMiles converts a linear search distance to the angular radius
// used by the spherical-cap query.
const earthRadiusMiles = 3963.0

// BootcampService implements bootcamp CRUD with ownership checks, geocoding,
// photo uploads and search indexing.
type BootcampService struct {
	Bootcamps repository.BootcampRepository
	Courses   repository.CourseRepository
	Geocoder  geocode.Geocoder
	Index     *search.BootcampIndex
	Photos    storage.PhotoStore
	MaxUpload int64
	Logger    *logrus.Logger
}

func NewBootcampService(bootcamps repository.BootcampRepository, courses repository.CourseRepository, geocoder geocode.Geocoder, index *search.BootcampIndex, photos storage.PhotoStore, maxUpload int64, logger *logrus.Logger) *BootcampService {
	return &BootcampService{
		Bootcamps: bootcamps,
		Courses:   courses,
		Geocoder:  geocoder,
		Index:     index,
		Photos:    photos,
		MaxUpload: maxUpload,
		Logger:    logger,
	}
}

func (s *BootcampService) List(ctx context.Context, opts query.Options) ([]entity.Bootcamp, int64, query.Pagination, error) {
	items, total, err := s.Bootcamps.List(ctx, opts)
	if err != nil {
		return nil, 0, query.Pagination{}, err
	}
	return items, total, query.Paginate(opts.Page, opts.Limit, total), nil
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	b, err := s.Bootcamps.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

type BootcampInput struct {
	Name          string
	Description   string
	Address       string
	Website       string
	Phone         string
	Email         string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGi      *bool
}

// Create inserts a bootcamp owned by the acting user. A publisher may publish
// only one bootcamp; admins are exempt. The submitted address is resolved to a
// location and never stored verbatim.
func (s *BootcampService) Create(ctx context.Context, actor *entity.User, in BootcampInput) (*entity.Bootcamp, error) {
	if !actor.IsAdmin() {
		existing, err := s.Bootcamps.GetByOwner(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrPublisherLimit
		}
	}

	loc, err := s.geocodeAddress(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	b := &entity.Bootcamp{
		Name:        in.Name,
		Slug:        slugify(in.Name),
		Description: in.Description,
		Website:     in.Website,
		Phone:       in.Phone,
		Email:       in.Email,
		Careers:     in.Careers,
		Location:    loc,
		User:        actor.ID,
	}
	if in.Housing != nil {
		b.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		b.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		b.JobGuarantee = *in.JobGuarantee
	}
	if in.AcceptGi != nil {
		b.AcceptGi = *in.AcceptGi
	}

	if err := s.Bootcamps.Create(ctx, b); err != nil {
		return nil, err
	}
	s.Index.Put(ctx, b)
	return b, nil
}

// Update applies partial field updates after the ownership check. A changed
// address is re-geocoded.
func (s *BootcampService) Update(ctx context.Context, actor *entity.User, id string, in BootcampInput) (*entity.Bootcamp, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(b.User) {
		return nil, ErrNotAuthorized
	}

	if in.Name != "" {
		b.Name = in.Name
		b.Slug = slugify(in.Name)
	}
	if in.Description != "" {
		b.Description = in.Description
	}
	if in.Website != "" {
		b.Website = in.Website
	}
	if in.Phone != "" {
		b.Phone = in.Phone
	}
	if in.Email != "" {
		b.Email = in.Email
	}
	if len(in.Careers) > 0 {
		b.Careers = in.Careers
	}
	if in.Housing != nil {
		b.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		b.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		b.JobGuarantee = *in.JobGuarantee
	}
	if in.AcceptGi != nil {
		b.AcceptGi = *in.AcceptGi
	}
	if in.Address != "" {
		loc, err := s.geocodeAddress(ctx, in.Address)
		if err != nil {
			return nil, err
		}
		b.Location = loc
	}

	if err := s.Bootcamps.Update(ctx, b); err != nil {
		return nil, err
	}
	s.Index.Put(ctx, b)
	return b, nil
}

// Delete removes a bootcamp and cascades to its courses.
func (s *BootcampService) Delete(ctx context.Context, actor *entity.User, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(b.User) {
		return ErrNotAuthorized
	}
	if err := s.Courses.DeleteByBootcamp(ctx, b.ID); err != nil {
		return err
	}
	if err := s.Bootcamps.Delete(ctx, b.ID); err != nil {
		return err
	}
	s.Index.Remove(ctx, b.ID.Hex())
	return nil
}

// WithinRadius resolves a postal code to coordinates and returns bootcamps
// inside the given distance in miles.
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]entity.Bootcamp, error) {
	res, err := s.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	radius := distanceMiles / earthRadiusMiles
	return s.Bootcamps.WithinRadius(ctx, res.Lat, res.Lng, radius)
}

// UploadPhoto validates and stores a photo, then records the stored name on
// the bootcamp. The file write completes before this returns.
func (s *BootcampService) UploadPhoto(ctx context.Context, actor *entity.User, id, origName, contentType string, size int64, r io.Reader) (string, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !actor.Owns(b.User) {
		return "", ErrNotAuthorized
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrUploadType
	}
	if size > s.MaxUpload {
		return "", ErrUploadTooLarge
	}

	filename := "photo_" + b.ID.Hex() + strings.ToLower(filepath.Ext(origName))

	stored, err := s.Photos.Save(ctx, filename, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Bootcamps.SetPhoto(ctx, b.ID, stored); err != nil {
		return "", err
	}
	return stored, nil
}

// Search queries the full-text index and hydrates the hits from the store.
func (s *BootcampService) Search(ctx context.Context, q string, size int) ([]entity.Bootcamp, error) {
	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Bootcamp, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		b, err := s.Bootcamps.GetByID(ctx, oid)
		if err != nil {
			// index can lag behind deletes
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *BootcampService) geocodeAddress(ctx context.Context, address string) (*entity.Location, error) {
	res, err := s.Geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	return &entity.Location{
		Type:             "Point",
		Coordinates:      []float64{res.Lng, res.Lat},
		FormattedAddress: res.FormattedAddress,
		Street:           res.Street,
		City:             res.City,
		State:            res.State,
		Zipcode:          res.Zipcode,
		Country:          res.Country,
	}, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
