package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/handlers"
	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/requestdata"
	"github.com/wayfarer-travel/wayfarer-backend/internal/services"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log.With("middleware", "AuthMiddleware"),
		authService: authService,
	}
}

// RequireAuth validates the bearer token and replaces the request
// context with one carrying the caller's identity. Downstream code
// reads identity only from that context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			handlers.RespondError(c, apperr.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		ctx, err := am.authService.ContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			handlers.RespondError(c, err)
			c.Abort()
			return
		}
		rd := requestdata.GetRequestData(ctx)
		if rd == nil || rd.UserID == uuid.Nil {
			handlers.RespondError(c, apperr.Unauthorized("no identity in token"))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin assumes RequireAuth already ran on the group.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil || rd.Role != types.RoleAdmin {
			handlers.RespondError(c, apperr.Forbidden("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
