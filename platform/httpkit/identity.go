package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserIDKey is the Gin context key the identity middleware stores the
// caller's user id under.
const ContextUserIDKey = "userID"

// GetUserID extracts the caller's user id from a Gin context.
// The second return is false when no authenticated identity is present.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// MustGetUserID extracts the caller's user id from a Gin context.
// If no identity is present, it aborts with 401 Unauthorized and returns false.
func MustGetUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}
