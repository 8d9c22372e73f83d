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

// BootcampModule wires bootcamp HTTP handlers into routes. Reads are public,
// writes require the publisher or admin role.

type BootcampModule struct {
	Handler *handlers.BootcampHandler
	Courses *handlers.CourseHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewBootcampModule(h *handlers.BootcampHandler, courses *handlers.CourseHandler, jwt *helpers.JWTManager, users repository.UserRepository) *BootcampModule {
	return &BootcampModule{Handler: h, Courses: courses, JWT: jwt, Users: users}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/bootcamps", readLimiter, m.Handler.List)
	rg.GET("/bootcamps/search", readLimiter, m.Handler.Search)
	rg.GET("/bootcamps/radius/:zipcode/:distance", readLimiter, m.Handler.Radius)
	rg.GET("/bootcamps/:id", readLimiter, m.Handler.Get)
	rg.GET("/bootcamps/:id/courses", readLimiter, m.Courses.List)

	protected := rg.Group("/")
	protected.Use(middleware.Protect(m.JWT, m.Users))
	protected.Use(middleware.Authorize(entity.RolePublisher, entity.RoleAdmin))
	protected.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		protected.POST("/bootcamps", m.Handler.Create)
		protected.PUT("/bootcamps/:id", m.Handler.Update)
		protected.DELETE("/bootcamps/:id", m.Handler.Delete)
		protected.PUT("/bootcamps/:id/photo", m.Handler.UploadPhoto)
		protected.POST("/bootcamps/:id/courses", m.Courses.Create)
	}
}
