package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	"github.com/gin-gonic/gin"
)

// RoleResolver looks up the role of a principal.
type RoleResolver interface {
	GetRole(ctx context.Context, uid string) (domain.Role, error)
}

// RequireRole aborts with 403 unless the authenticated principal holds role.
// It must run after AuthMiddleware.
func RequireRole(resolver RoleResolver, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		t := GetTranslator(c)

		uid, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": t.Message(i18n.MsgUnauthorized)})
			return
		}

		actual, err := resolver.GetRole(c.Request.Context(), uid)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to resolve role", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": t.Message(i18n.MsgInternal)})
			return
		}
		if actual != role {
			logger.Warn("Role check failed", slog.String("required", string(role)), slog.String("actual", string(actual)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": t.Message(i18n.MsgForbidden)})
			return
		}
		c.Next()
	}
}
