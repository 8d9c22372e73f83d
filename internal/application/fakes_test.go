package application

import (
	"context"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlaunch/bootcamper/internal/domain/entity"
	"github.com/devlaunch/bootcamper/internal/domain/repository"
	"github.com/devlaunch/bootcamper/pkg/geocode"
	"github.com/devlaunch/bootcamper/pkg/query"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByResetToken(_ context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordExpire.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeBootcampRepo struct {
	mu        sync.Mutex
	bootcamps map[primitive.ObjectID]*entity.Bootcamp
}

func newFakeBootcampRepo() *fakeBootcampRepo {
	return &fakeBootcampRepo{bootcamps: map[primitive.ObjectID]*entity.Bootcamp{}}
}

func (r *fakeBootcampRepo) Create(_ context.Context, b *entity.Bootcamp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.CreatedAt = time.Now()
	cp := *b
	r.bootcamps[b.ID] = &cp
	return nil
}

func (r *fakeBootcampRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Bootcamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bootcamps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBootcampRepo) GetByOwner(_ context.Context, userID primitive.ObjectID) (*entity.Bootcamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bootcamps {
		if b.User == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBootcampRepo) List(_ context.Context, opts query.Options) ([]entity.Bootcamp, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Bootcamp, 0, len(r.bootcamps))
	for _, b := range r.bootcamps {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBootcampRepo) Update(_ context.Context, b *entity.Bootcamp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bootcamps[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	r.bootcamps[b.ID] = &cp
	return nil
}

func (r *fakeBootcampRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bootcamps[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.bootcamps, id)
	return nil
}

func (r *fakeBootcampRepo) WithinRadius(_ context.Context, lat, lng, radius float64) ([]entity.Bootcamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Bootcamp{}
	for _, b := range r.bootcamps {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBootcampRepo) SetAverageCost(_ context.Context, id primitive.ObjectID, cost int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bootcamps[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.AverageCost = cost
	return nil
}

func (r *fakeBootcampRepo) SetPhoto(_ context.Context, id primitive.ObjectID, filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bootcamps[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Photo = filename
	return nil
}

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[primitive.ObjectID]*entity.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[primitive.ObjectID]*entity.Course{}}
}

func (r *fakeCourseRepo) Create(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now()
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) List(_ context.Context, opts query.Options) ([]entity.Course, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var scope *primitive.ObjectID
	for _, cond := range opts.Conditions {
		if cond.Field == "bootcamp" && cond.Op == query.OpEq {
			if oid, ok := cond.Value.(primitive.ObjectID); ok {
				scope = &oid
			}
		}
	}
	out := []entity.Course{}
	for _, c := range r.courses {
		if scope != nil && c.Bootcamp != *scope {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCourseRepo) Update(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) DeleteByBootcamp(_ context.Context, bootcampID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.courses {
		if c.Bootcamp == bootcampID {
			delete(r.courses, id)
		}
	}
	return nil
}

func (r *fakeCourseRepo) AverageTuition(_ context.Context, bootcampID primitive.ObjectID) (float64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	var n int
	for _, c := range r.courses {
		if c.Bootcamp == bootcampID {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / float64(n), true, nil
}

// fakeGeocoder returns a canned result and records the last address asked for.
type fakeGeocoder struct {
	result   geocode.Result
	err      error
	lastAddr string
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (geocode.Result, error) {
	g.lastAddr = address
	return g.result, g.err
}

// fakePublisher records published jobs; fails when broken.
type fakePublisher struct {
	broken bool
	jobs   []any
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if p.broken {
		return io.ErrClosedPipe
	}
	p.jobs = append(p.jobs, body)
	return nil
}

// fakePhotoStore records the last saved file.
type fakePhotoStore struct {
	lastName string
	lastType string
	data     []byte
	err      error
}

func (s *fakePhotoStore) Save(_ context.Context, filename, contentType string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.lastName = filename
	s.lastType = contentType
	s.data, _ = io.ReadAll(r)
	return filename, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.BootcampRepository = (*fakeBootcampRepo)(nil)
var _ repository.CourseRepository = (*fakeCourseRepo)(nil)
