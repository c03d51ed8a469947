package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tajer/backend/internal/infrastructure/auth"
	"github.com/tajer/backend/internal/infrastructure/config"
)

func newMiddlewareJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "middleware-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "tajer-test",
	})
}

func newProtectedRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuth(jwtService, nil))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"platform_id": GetJWTPlatformID(c),
			"username":    GetJWTUsername(c),
			"role":        GetJWTRole(c),
		})
	})
	return router
}

func TestJWTAuth(t *testing.T) {
	t.Run("valid token passes and populates context", func(t *testing.T) {
		jwtService := newMiddlewareJWTService()
		router := newProtectedRouter(jwtService)

		platformID := uuid.New()
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			PlatformID: platformID,
			UserID:     uuid.New(),
			Username:   "ahmed",
			Role:       "owner",
		})
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), platformID.String())
		assert.Contains(t, w.Body.String(), "ahmed")
		assert.Contains(t, w.Body.String(), "owner")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router := newProtectedRouter(newMiddlewareJWTService())

		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		router := newProtectedRouter(newMiddlewareJWTService())

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Basic abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		router := newProtectedRouter(newMiddlewareJWTService())

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("expired token reports TOKEN_EXPIRED", func(t *testing.T) {
		expiring := auth.NewJWTService(config.JWTConfig{
			Secret:                 "middleware-test-secret",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "tajer-test",
		})
		router := newProtectedRouter(newMiddlewareJWTService())

		pair, err := expiring.GenerateTokenPair(auth.GenerateTokenInput{
			PlatformID: uuid.New(),
			UserID:     uuid.New(),
			Username:   "ahmed",
			Role:       "owner",
		})
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("refresh token is not accepted on protected routes", func(t *testing.T) {
		jwtService := newMiddlewareJWTService()
		router := newProtectedRouter(jwtService)

		pair, _ := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			PlatformID: uuid.New(),
			UserID:     uuid.New(),
			Username:   "ahmed",
			Role:       "owner",
		})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.RefreshToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
