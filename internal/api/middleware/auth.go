package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/auth"
	"github.com/jmaddox/groundops/internal/logger"
)

// userIDKey is the Gin context key holding the authenticated user ID.
const userIDKey = "auth_user_id"

// RequireAuth returns a middleware that rejects requests without a valid
// bearer token. The token may also arrive as an `access_token` query
// parameter, which EventSource clients need since they cannot set headers.
// Parameters:
//   - jwtSvc: token verifier.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func RequireAuth(jwtSvc *auth.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		userID, err := jwtSvc.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(userIDKey, userID)
		ctx := logger.SetUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header or query.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.Query("access_token")
}

// UserID returns the authenticated user ID set by RequireAuth.
// Parameters:
//   - c: Gin request context.
// Returns:
//   - string: user ID, empty when unauthenticated.
func UserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	s, _ := id.(string)
	return s
}
