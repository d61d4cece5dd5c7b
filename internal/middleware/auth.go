package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"casebem/internal/model"
	"casebem/pkg/response"
	"casebem/pkg/scope"
)

// Auth verifies the Bearer token and stores the acting scope in the request
// context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(c)
			return
		}

		sc, err := m.jwtManager.Verify(parts[1])
		if err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.Auth Verify: %v", err)
			response.Unauthorized(c)
			return
		}

		c.Request = c.Request.WithContext(scope.SetScopeToContext(c.Request.Context(), sc))
		c.Next()
	}
}

// RequireRole rejects callers whose scope has a different role. It must run
// after Auth.
func (m Middleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc, ok := scope.GetScopeFromContext(c.Request.Context())
		if !ok {
			response.Unauthorized(c)
			return
		}
		if sc.Role != role {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}
