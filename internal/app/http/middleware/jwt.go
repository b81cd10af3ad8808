package middleware

import (
	"errors"
	"strings"

	"yamdb/database"
	"yamdb/internal/api/apierr"
	"yamdb/internal/domain/access"
	"yamdb/internal/domain/users"
	"yamdb/internal/infra/tokens"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const callerKey = "caller"

// Authenticate resolves the bearer token, if any, to a Caller. Requests without an
// Authorization header continue as anonymous; a present but invalid token is rejected.
func Authenticate(issuer *tokens.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(callerKey, access.Caller{})
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
			apierr.Respond(c, apierr.NotAuthenticated("Bearer token malformed"))
			return
		}

		claims, err := issuer.Parse(strings.TrimSpace(tokenString), tokens.TypeAccess)
		if err != nil {
			apierr.Respond(c, apierr.NotAuthenticated("Invalid or expired token"))
			return
		}

		// Role is read from the database so role changes apply to tokens already issued.
		var user users.User
		if err := database.DB.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierr.Respond(c, apierr.NotAuthenticated("User not found"))
				return
			}
			apierr.Respond(c, err)
			return
		}
		if !user.IsActive() {
			apierr.Respond(c, apierr.NotAuthenticated("User is not active"))
			return
		}

		c.Set(callerKey, access.CallerFor(user))
		c.Next()
	}
}

// RequireAuth rejects anonymous callers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerFrom(c).Authenticated() {
			apierr.Respond(c, apierr.NotAuthenticated(access.ErrNotAuthenticated.Error()))
			return
		}
		c.Next()
	}
}

// Require evaluates the list-level predicate of perm. Object-level checks run in handlers.
func Require(perm access.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := access.Check(perm, CallerFrom(c), c.Request.Method); err != nil {
			apierr.Respond(c, err)
			return
		}
		c.Next()
	}
}

// CallerFrom returns the caller set by Authenticate, or the anonymous caller.
func CallerFrom(c *gin.Context) access.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(access.Caller); ok {
			return caller
		}
	}
	return access.Caller{}
}
