package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devlaunch/bootcamper/internal/container"
	"github.com/devlaunch/bootcamper/internal/domain/repository"
	handlers "github.com/devlaunch/bootcamper/internal/interface/http"
	"github.com/devlaunch/bootcamper/internal/interface/middleware"
	"github.com/devlaunch/bootcamper/pkg/helpers"
)

// AuthModule wires the auth HTTP handlers into routes.
// Public: POST /auth/register, POST /auth/login, GET /auth/logout,
// POST /auth/forgotpassword, PUT /auth/resetpassword/:resettoken
// Protected: GET /auth/me, PUT /auth/updatedetails, PUT /auth/updatepassword

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, users repository.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.GET("/auth/logout", m.Handler.Logout)
	rg.POST("/auth/forgotpassword", forgotLimiter, m.Handler.ForgotPassword)
	rg.PUT("/auth/resetpassword/:resettoken", resetLimiter, m.Handler.ResetPassword)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Protect(m.JWT, m.Users))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.PUT("/auth/updatedetails", m.Handler.UpdateDetails)
		auth.PUT("/auth/updatepassword", m.Handler.UpdatePassword)
	}
}
