package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Asror571/insta-server/internal/application/ports"
	domain "github.com/Asror571/insta-server/internal/domain/user"
	"github.com/Asror571/insta-server/internal/infrastructure/jwt"
)

const CtxUser = "authUser"

// authFailedMessage is the single externally visible outcome for every gate
// failure; clients cannot tell a missing header from an expired token or a
// deleted user.
const authFailedMessage = "Please authenticate."

// AuthMiddleware is the request gate for protected routes: it extracts the
// bearer token, verifies it, resolves the subject to a live user record and
// attaches that record to the gin context. Any failure short-circuits the
// request with 401 before a handler can touch the store.
func AuthMiddleware(jwtService *jwt.Service, userService ports.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			abortUnauthenticated(c)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		subject, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		u, err := userService.FindUserByID(c.Request.Context(), subject)
		if err != nil || u == nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(CtxUser, u)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		gin.H{"error": authFailedMessage},
	)
}

// UserFromContext returns the record the gate attached; ok is false only if
// a handler was wired without the gate.
func UserFromContext(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(CtxUser)
	if !exists {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}
