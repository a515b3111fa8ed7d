// Package middleware provides the HTTP middleware chain for the store API.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/infrastructure/auth"
	"github.com/plantstore/backend/internal/interfaces/http/dto"
)

// Context keys used to pass authentication state to handlers.
const (
	AuthClaimsKey  = "auth_claims"
	AuthUserIDKey  = "auth_user_id"
	AuthIsStaffKey = "auth_is_staff"
)

// TokenChecker validates an access token and reports its claims.
type TokenChecker interface {
	CheckAccessToken(ctx context.Context, token string) (*auth.Claims, error)
}

// AuthConfig configures the authentication middleware.
type AuthConfig struct {
	// Checker validates bearer tokens.
	Checker TokenChecker
	// PublicPaths are exact paths that never require a token.
	PublicPaths []string
	// PublicPathPrefixes are path prefixes that never require a token.
	PublicPathPrefixes []string
	// PublicMethods maps a path prefix to the methods that are public
	// under it. Used for read-open, write-protected resources.
	PublicMethods map[string][]string
	// Logger for authentication failures.
	Logger *zap.Logger
}

// Authenticate returns a middleware enforcing bearer-token auth.
//
// Public paths pass through without a token, but when a valid token is
// present its claims are still stored so handlers can personalize
// public responses. Invalid tokens on public paths are ignored rather
// than rejected.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token := extractBearerToken(c)
		public := isPublicRequest(cfg, c)

		if token == "" {
			if public {
				c.Next()
				return
			}
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := cfg.Checker.CheckAccessToken(c.Request.Context(), token)
		if err != nil {
			if public {
				c.Next()
				return
			}
			cfg.Logger.Debug("Rejected access token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			handleAuthError(c, err)
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthIsStaffKey, claims.IsStaff)
		c.Next()
	}
}

// RequireAuth rejects requests that carry no authenticated user. Placed
// after Authenticate on routes that must not be anonymous even when the
// surrounding group is public.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}

// RequireStaff rejects requests from non-staff users.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !IsStaff(c) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Staff access required"))
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID, if any.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(AuthUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	raw, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// IsStaff reports whether the authenticated user has staff privileges.
func IsStaff(c *gin.Context) bool {
	v, exists := c.Get(AuthIsStaffKey)
	if !exists {
		return false
	}
	staff, ok := v.(bool)
	return ok && staff
}

// ClaimsFromContext returns the full token claims, if any.
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(AuthClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func isPublicRequest(cfg AuthConfig, c *gin.Context) bool {
	path := c.Request.URL.Path
	for _, p := range cfg.PublicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.PublicPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for prefix, methods := range cfg.PublicMethods {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		for _, m := range methods {
			if c.Request.Method == m {
				return true
			}
		}
	}
	return false
}

func handleAuthError(c *gin.Context, err error) {
	code := dto.ErrCodeTokenInvalid
	message := "Invalid or malformed token"

	var domainErr *shared.DomainError
	switch {
	case errors.As(err, &domainErr):
		code = dto.NormalizeErrorCode(domainErr.Code)
		message = domainErr.Message
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code = dto.ErrCodeTokenRevoked
		message = "Token has been revoked"
	}

	abortUnauthorized(c, code, message)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}
