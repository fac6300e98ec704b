package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/pkg/logger"
	"rentalhub/internal/pkg/response"
	"rentalhub/internal/pkg/session"
)

// SessionAuth requires a valid, unrevoked session marker from the session
// cookie or an Authorization: Bearer header. On success it sets "user_id"
// and "role" on the gin context and on the request context.
func SessionAuth(sessions *session.Service, revoker session.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.TokenFromRequest(c.Request)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := sessions.Parse(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.WithContext(c.Request.Context()).Error("revocation check failed", "error", err)
				response.Abort(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			if revoked {
				response.Abort(c, http.StatusUnauthorized, "Invalid or expired session")
				return
			}
		}

		c.Set("user_id", claims.UserID())
		c.Set("role", string(claims.Role))

		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID())
		ctx = context.WithValue(ctx, logger.RoleKey, string(claims.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
