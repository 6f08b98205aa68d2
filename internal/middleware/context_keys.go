package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// operatorIDKey is the key used to store the authenticated operator's ID.
const operatorIDKey = contextKey("operatorID")

// WithOperatorID returns a context carrying the authenticated operator ID.
func WithOperatorID(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorIDKey, operatorID)
}

// GetOperatorIDFromContext retrieves the authenticated operator ID from the
// Gin context. It returns the ID and a boolean indicating if it was found.
func GetOperatorIDFromContext(c *gin.Context) (string, bool) {
	if val, exists := c.Get(string(operatorIDKey)); exists {
		if id, ok := val.(string); ok {
			return id, true
		}
		return "", false
	}
	// Check the request context as well; the auth middleware stores it there.
	if val := c.Request.Context().Value(operatorIDKey); val != nil {
		if id, ok := val.(string); ok {
			return id, true
		}
	}
	return "", false
}
