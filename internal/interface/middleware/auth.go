package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlaunch/bootcamper/internal/domain/entity"
	"github.com/devlaunch/bootcamper/internal/domain/repository"
	"github.com/devlaunch/bootcamper/pkg/helpers"
	"github.com/devlaunch/bootcamper/pkg/response"
)

// Context key under which Protect stores the authenticated user.
const CtxUserKey = "currentUser"

// Protect verifies the session token (Authorization: Bearer header first,
// token cookie as fallback), loads the user and injects it into the context.
func Protect(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie("token")
		}
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}

		uid, err := jwt.Verify(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		oid, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		u, err := users.GetByID(c.Request.Context(), oid)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}

		c.Set(CtxUserKey, u)
		c.Set("userID", u.ID.Hex()) // used by the per-user rate limiter
		c.Next()
	}
}

// Authorize rejects authenticated users whose role is not in the allow-list.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.AbortError(c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusUnauthorized, "user role "+u.Role+" is not authorized to access this route", nil)
	}
}

// CurrentUser returns the user set by Protect, or nil on public routes.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
