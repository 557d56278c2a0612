package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey keys values stored in the request context. Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey     = contextKey("logger")
	userIDKey        = contextKey("userID")
	userEmailKey     = contextKey("userEmail")
	translatorCtxKey = contextKey("translator")
)

// GetUserIDFromContext retrieves the authenticated uid from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		uid, ok := v.(string)
		return uid, ok && uid != ""
	}
	return GetUserIDFromCtx(c.Request.Context())
}

// GetUserIDFromCtx retrieves the authenticated uid from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey).(string)
	return uid, ok && uid != ""
}

// GetUserEmailFromContext returns the email claim of the access token, if any.
func GetUserEmailFromContext(c *gin.Context) string {
	if v, exists := c.Get(string(userEmailKey)); exists {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

func contextWithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}
