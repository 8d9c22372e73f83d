package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devlaunch/bootcamper/internal/application"
	"github.com/devlaunch/bootcamper/pkg/query"
	"github.com/devlaunch/bootcamper/pkg/response"
)

// writeError maps application errors onto the HTTP error envelope. Anything
// unrecognized is logged and reported as a generic 500 so internals never leak.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var badQuery *query.ErrBadQuery
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrNotAuthorized):
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrDuplicateEmail),
		errors.Is(err, application.ErrRoleNotAllowed),
		errors.Is(err, application.ErrInvalidResetToken),
		errors.Is(err, application.ErrPublisherLimit),
		errors.Is(err, application.ErrUploadType),
		errors.Is(err, application.ErrUploadTooLarge):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrEmailDelivery):
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
	case errors.As(err, &badQuery):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unhandled error")
		response.Error(c, http.StatusInternalServerError, "server error", nil)
	}
}
