package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JuzzThyne/ERI-backend/utils"

	"github.com/gin-gonic/gin"
)

type ctxKey int

const (
	ctxKeyAdminID ctxKey = iota
	ctxKeyRequestID
)

// adminIDKey is the gin context key set by AuthMiddleware
const adminIDKey = "adminID"

// AuthMiddleware verifies the bearer token and attaches the admin id
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, utils.ErrMissingCredential)
			return
		}

		// Extract token from "Bearer <token>"
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			abortUnauthorized(c, utils.ErrInvalidCredential)
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(adminIDKey, claims.AdminID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxKeyAdminID, claims.AdminID))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	msg := "Invalid token"
	switch {
	case errors.Is(err, utils.ErrMissingCredential):
		msg = "Missing token"
	case errors.Is(err, utils.ErrExpiredCredential):
		msg = "Token has expired"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}

// AdminID returns the admin id set by AuthMiddleware, or "" outside protected routes.
func AdminID(c *gin.Context) string {
	return c.GetString(adminIDKey)
}

// AdminIDFromContext reads the admin id from a request context.
func AdminIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyAdminID).(string)
	return v
}
