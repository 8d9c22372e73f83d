package application

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthorized covers ownership/role failures; it intentionally maps
	// to 401 to match the public API contract.
	ErrNotAuthorized     = errors.New("not authorized to access this resource")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrRoleNotAllowed    = errors.New("role cannot be self-assigned")
	ErrInvalidResetToken = errors.New("invalid or expired token")
	ErrEmailDelivery     = errors.New("email could not be sent")
	// ErrPublisherLimit enforces the one-bootcamp-per-publisher rule.
	ErrPublisherLimit = errors.New("publisher has already published a bootcamp")
	ErrUploadType     = errors.New("please upload an image file")
	ErrUploadTooLarge = errors.New("uploaded file exceeds the size limit")
)
