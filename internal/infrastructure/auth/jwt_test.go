package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tajer/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "tajer-test",
	})
}

func testInput() GenerateTokenInput {
	return GenerateTokenInput{
		PlatformID: uuid.New(),
		UserID:     uuid.New(),
		Username:   "ahmed",
		Role:       "owner",
	}
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	service := newTestService()

	pair, err := service.GenerateTokenPair(testInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	t.Run("valid token round-trips claims", func(t *testing.T) {
		service := newTestService()
		input := testInput()
		pair, err := service.GenerateTokenPair(input)
		assert.NoError(t, err)

		claims, err := service.ValidateAccessToken(pair.AccessToken)

		assert.NoError(t, err)
		assert.Equal(t, input.PlatformID.String(), claims.PlatformID)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, "ahmed", claims.Username)
		assert.Equal(t, "owner", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)

		platformID, err := claims.GetPlatformUUID()
		assert.NoError(t, err)
		assert.Equal(t, input.PlatformID, platformID)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		service := newTestService()

		_, err := service.ValidateAccessToken("not-a-token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh token is rejected as access token", func(t *testing.T) {
		service := newTestService()
		pair, _ := service.GenerateTokenPair(testInput())

		_, err := service.ValidateAccessToken(pair.RefreshToken)

		// Signed with a different secret, so it fails before the type check.
		assert.Error(t, err)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		service := newTestService()
		other := NewJWTService(config.JWTConfig{
			Secret:                 "completely-different-secret",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "tajer-test",
		})
		pair, _ := other.GenerateTokenPair(testInput())

		_, err := service.ValidateAccessToken(pair.AccessToken)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		service := NewJWTService(config.JWTConfig{
			Secret:                 "test-access-secret",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "tajer-test",
		})
		pair, err := service.GenerateTokenPair(testInput())
		assert.NoError(t, err)

		_, err = service.ValidateAccessToken(pair.AccessToken)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestJWTService_ValidateRefreshToken(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		service := newTestService()
		input := testInput()
		pair, _ := service.GenerateTokenPair(input)

		claims, err := service.ValidateRefreshToken(pair.RefreshToken)

		assert.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
		assert.Equal(t, input.UserID.String(), claims.UserID)
	})

	t.Run("access token is rejected as refresh token", func(t *testing.T) {
		service := newTestService()
		pair, _ := service.GenerateTokenPair(testInput())

		_, err := service.ValidateRefreshToken(pair.AccessToken)

		assert.Error(t, err)
	})

	t.Run("shared secret still enforces token type", func(t *testing.T) {
		// With no refresh secret configured both tokens share one secret,
		// so the type claim is the only thing telling them apart.
		service := NewJWTService(config.JWTConfig{
			Secret:                 "single-secret",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "tajer-test",
		})
		pair, _ := service.GenerateTokenPair(testInput())

		_, err := service.ValidateRefreshToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)

		_, err = service.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	t.Run("issues a new pair with updated role", func(t *testing.T) {
		service := newTestService()
		input := testInput()
		pair, _ := service.GenerateTokenPair(input)

		refreshed, err := service.RefreshTokenPair(pair.RefreshToken, "ahmed", "staff")

		assert.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		claims, err := service.ValidateAccessToken(refreshed.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, input.PlatformID.String(), claims.PlatformID)
		assert.Equal(t, "staff", claims.Role)
	})

	t.Run("rejects an invalid refresh token", func(t *testing.T) {
		service := newTestService()

		_, err := service.RefreshTokenPair("bad-token", "ahmed", "owner")

		assert.Error(t, err)
	})
}
