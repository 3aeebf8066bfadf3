package httpHandler

import (
	"net/http"
	"strings"

	"saveenergy-server/usecases"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// AuthRequired extracts the bearer token from the Authorization header and
// resolves it to a user id, aborting with 401 otherwise.
func AuthRequired(authUC *usecases.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid authorization header"})
			return
		}

		userID, err := authUC.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the user id set by AuthRequired.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
