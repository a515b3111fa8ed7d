package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantstore/backend/internal/domain/shared"
	"github.com/plantstore/backend/internal/infrastructure/auth"
)

type fakeChecker struct {
	claims map[string]*auth.Claims
	err    error
}

func (f *fakeChecker) CheckAccessToken(_ context.Context, token string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	claims, ok := f.claims[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}

func newAuthRouter(t *testing.T, checker TokenChecker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(RequestID())
	engine.Use(Authenticate(AuthConfig{
		Checker:     checker,
		PublicPaths: []string{"/public"},
		PublicMethods: map[string][]string{
			"/products": {http.MethodGet},
		},
	}))

	whoami := func(c *gin.Context) {
		if userID, ok := CurrentUserID(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "staff": IsStaff(c)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	}
	engine.GET("/public", whoami)
	engine.GET("/products", whoami)
	engine.POST("/products", RequireStaff(), whoami)
	engine.GET("/private", whoami)
	return engine
}

func perform(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	staffID := uuid.New()
	checker := &fakeChecker{claims: map[string]*auth.Claims{
		"user-token":  {UserID: userID.String()},
		"staff-token": {UserID: staffID.String(), IsStaff: true},
	}}
	engine := newAuthRouter(t, checker)

	t.Run("missing token on private route", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/private", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("valid token on private route", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/private", "user-token")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("invalid token rejected on private route", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/private", "bogus")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("public path passes without token", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/public", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("public path keeps claims from valid token", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/public", "user-token")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("public path ignores invalid token", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/public", "bogus")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("method-scoped public read", func(t *testing.T) {
		w := perform(engine, http.MethodGet, "/products", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("write on read-open resource requires token", func(t *testing.T) {
		w := perform(engine, http.MethodPost, "/products", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("staff guard rejects regular user", func(t *testing.T) {
		w := perform(engine, http.MethodPost, "/products", "user-token")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
	})

	t.Run("staff guard admits staff", func(t *testing.T) {
		w := perform(engine, http.MethodPost, "/products", "staff-token")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthenticateDomainErrorCodes(t *testing.T) {
	checker := &fakeChecker{err: shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")}
	engine := newAuthRouter(t, checker)

	w := perform(engine, http.MethodGet, "/private", "revoked-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_REVOKED")
}

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "standard", header: "Bearer abc", want: "abc"},
		{name: "case insensitive scheme", header: "bearer abc", want: "abc"},
		{name: "missing scheme", header: "abc", want: ""},
		{name: "wrong scheme", header: "Basic abc", want: ""},
		{name: "empty", header: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, extractBearerToken(c))
		})
	}
}
