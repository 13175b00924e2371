package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fanzoftheone/taskdeck/internal/identity"
	"github.com/fanzoftheone/taskdeck/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Auth resolves the bearer token into a user and stores it on the gin
// context. Both token failures and unknown subjects answer the same 401.
func Auth(resolver *identity.Resolver, logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		user, err := resolver.Resolve(ctx.Request.Context(), strings.TrimSpace(parts[1]))

		if err != nil {
			if errors.Is(err, identity.ErrUnauthenticated) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}

			logger.Error("identity resolution failed", "error", err, "path", ctx.Request.URL.Path)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Email: user.Email,
		})
		ctx.Next()
	}
}
