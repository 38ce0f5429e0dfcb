package api

import (
	"net/http"
	"time"

	"github.com/album-index-api/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	ctxKeyIsAdmin = "is_admin"
	ctxKeyClaims  = "admin_claims"
)

// requireAdmin rejects requests without a valid admin bearer token. An
// empty configured secret rejects everything.
func requireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.FromRequest(c.GetHeader("Authorization"), secret, time.Now())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(ctxKeyIsAdmin, true)
		c.Set(ctxKeyClaims, claims)
		c.Next()
	}
}

// optionalAdmin verifies the bearer token when present but never rejects
func optionalAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := auth.FromRequest(c.GetHeader("Authorization"), secret, time.Now()); ok {
			c.Set(ctxKeyIsAdmin, true)
			c.Set(ctxKeyClaims, claims)
		}
		c.Next()
	}
}

// isAdmin reports whether the request carried a valid admin token
func isAdmin(c *gin.Context) bool {
	return c.GetBool(ctxKeyIsAdmin)
}
