package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlaunch/bootcamper/internal/domain/entity"
	"github.com/devlaunch/bootcamper/internal/domain/repository"
	"github.com/devlaunch/bootcamper/pkg/helpers"
	"github.com/devlaunch/bootcamper/pkg/mailer"
)

// Publisher enqueues email jobs for out-of-band delivery.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements registration, login and the password-reset token
// lifecycle.
type AuthService struct {
	Users         repository.UserRepository
	JWT           *helpers.JWTManager
	Pub           Publisher
	Logger        *logrus.Logger
	ResetTokenTTL time.Duration
	MailEnabled   bool
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, pub Publisher, logger *logrus.Logger, resetTTL time.Duration, mailEnabled bool) *AuthService {
	return &AuthService{
		Users:         users,
		JWT:           jwt,
		Pub:           pub,
		Logger:        logger,
		ResetTokenTTL: resetTTL,
		MailEnabled:   mailEnabled,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates a user with a hashed password. Only the user and publisher
// roles are self-assignable.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RolePublisher {
		return nil, fmt.Errorf("role %q: %w", in.Role, ErrRoleNotAllowed)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Role:     role,
		Password: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials. The same error is returned for an unknown email
// and a wrong password so the response does not reveal which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Me returns the user bound to a verified session token.
func (s *AuthService) Me(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return u, nil
}

type UpdateDetailsInput struct {
	Name  string
	Email string
}

// UpdateDetails changes name and/or email. The password field is left
// untouched, so no rehash happens here.
func (s *AuthService) UpdateDetails(ctx context.Context, userID primitive.ObjectID, in UpdateDetailsInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// UpdatePassword verifies the current password before storing a hash of the
// new one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, current, newPassword string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return nil, ErrInvalidCredentials
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ForgotPassword generates a reset token, stores only its hash with an expiry
// on the user record, and enqueues the reset email. If the email cannot be
// enqueued the stored reset fields are rolled back and ErrEmailDelivery is
// returned.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return ErrNotFound
	}

	plain, err := helpers.GenResetToken()
	if err != nil {
		return err
	}
	u.ResetPasswordToken = helpers.HashResetToken(plain)
	u.ResetPasswordExpire = time.Now().Add(s.ResetTokenTTL).UTC()
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}

	if !s.MailEnabled {
		s.Logger.WithField("email", u.Email).Info("mail sending disabled; skipping reset email")
		return nil
	}
	if s.Pub == nil {
		// mail is expected but the queue never came up: same contract as a
		// failed publish, the caller must not be told an email is on its way
		s.Logger.WithField("email", u.Email).Error("reset email queue unavailable, rolling back token")
		s.rollbackResetToken(ctx, u)
		return ErrEmailDelivery
	}

	resetURL := resetURLBase + "/" + plain
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Password reset token",
		Text:    "Please reset your password by making a PUT request to " + resetURL,
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Error("reset email enqueue failed, rolling back token")
		s.rollbackResetToken(ctx, u)
		return ErrEmailDelivery
	}
	return nil
}

func (s *AuthService) rollbackResetToken(ctx context.Context, u *entity.User) {
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = time.Time{}
	if err := s.Users.Update(ctx, u); err != nil {
		s.Logger.WithError(err).Error("reset token rollback failed")
	}
}

// ResetPassword consumes a reset token: it is accepted only before its expiry
// and only once, since both reset fields are cleared alongside the new
// password hash.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword string) (*entity.User, error) {
	u, err := s.Users.GetByResetToken(ctx, helpers.HashResetToken(plainToken), time.Now())
	if err != nil {
		return nil, ErrInvalidResetToken
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = time.Time{}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
