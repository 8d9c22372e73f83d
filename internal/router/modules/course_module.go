package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devlaunch/bootcamper/internal/container"
	"github.com/devlaunch/bootcamper/internal/domain/entity"
	"github.com/devlaunch/bootcamper/internal/domain/repository"
	handlers "github.com/devlaunch/bootcamper/internal/interface/http"
	"github.com/devlaunch/bootcamper/internal/interface/middleware"
	"github.com/devlaunch/bootcamper/pkg/helpers"
)

// CourseModule wires top-level course routes. Nested course routes live under
// the bootcamp module.

type CourseModule struct {
	Handler *handlers.CourseHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewCourseModule(h *handlers.CourseHandler, jwt *helpers.JWTManager, users repository.UserRepository) *CourseModule {
	return &CourseModule{Handler: h, JWT: jwt, Users: users}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/courses", readLimiter, m.Handler.List)
	rg.GET("/courses/:id", readLimiter, m.Handler.Get)

	protected := rg.Group("/")
	protected.Use(middleware.Protect(m.JWT, m.Users))
	protected.Use(middleware.Authorize(entity.RolePublisher, entity.RoleAdmin))
	protected.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		protected.PUT("/courses/:id", m.Handler.Update)
		protected.DELETE("/courses/:id", m.Handler.Delete)
	}
}
