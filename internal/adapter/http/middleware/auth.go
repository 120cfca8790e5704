package middleware

import (
	"net/http"
	"strings"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/auth"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey      = "x-user-id"
	currentUserKey = "x-current-user"
)

// RequireAuth validates the bearer token and loads the account it names, so
// a token for a deleted user stops working immediately.
func RequireAuth(jwt *auth.JWT, users port.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			unauthorized(c, "Unauthorized request")
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			unauthorized(c, "Invalid authorization format")
			return
		}

		claims, err := jwt.Verify(bearer[len("Bearer "):])

		if err != nil {
			unauthorized(c, "Unauthorized request")
			return
		}

		sub, ok := claims["sub"].(string)

		if !ok || sub == "" {
			unauthorized(c, "Unauthorized request")
			return
		}

		user, err := users.GetByUUID(c.Request.Context(), sub)

		if err != nil {
			unauthorized(c, "Unauthorized request")
			return
		}

		c.Set(userIDKey, user.ID)
		c.Set(currentUserKey, user)

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"errors": []string{message},
	})

	c.Abort()
}

// CurrentUser returns the authenticated user loaded by RequireAuth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(currentUserKey)

	if !ok {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)

	return user, ok
}

// CurrentUserID returns the numeric id of the authenticated user.
func CurrentUserID(c *gin.Context) (int, bool) {
	value, ok := c.Get(userIDKey)

	if !ok {
		return 0, false
	}

	id, ok := value.(int)

	return id, ok
}
