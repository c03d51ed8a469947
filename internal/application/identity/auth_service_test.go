package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/identity"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/infrastructure/auth"
	"github.com/tajer/backend/internal/infrastructure/config"
)

// MockPlatformRepository is a mock implementation of identity.PlatformRepository
type MockPlatformRepository struct {
	mock.Mock
}

func (m *MockPlatformRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Platform, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) FindBySubdomain(ctx context.Context, subdomain string) (*identity.Platform, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Platform, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) FindExpiring(ctx context.Context, cutoff time.Time) ([]identity.Platform, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) Save(ctx context.Context, platform *identity.Platform) error {
	args := m.Called(ctx, platform)
	return args.Error(0)
}

func (m *MockPlatformRepository) SaveWithLock(ctx context.Context, platform *identity.Platform) error {
	args := m.Called(ctx, platform)
	return args.Error(0)
}

func (m *MockPlatformRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, platformID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, platformID uuid.UUID, username string) (*identity.User, error) {
	args := m.Called(ctx, platformID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, platformID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error {
	args := m.Called(ctx, platformID, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountForPlatform(ctx context.Context, platformID uuid.UUID) (int64, error) {
	args := m.Called(ctx, platformID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "test",
	})
}

func newTestAuthService() (*AuthService, *MockPlatformRepository, *MockUserRepository) {
	platformRepo := new(MockPlatformRepository)
	userRepo := new(MockUserRepository)
	service := NewAuthService(platformRepo, userRepo, newTestJWTService(), zap.NewNop())
	return service, platformRepo, userRepo
}

func createTestPlatform() *identity.Platform {
	platform, _ := identity.NewPlatform("My Store", "mystore")
	return platform
}

func createTestUser(platformID uuid.UUID, password string) *identity.User {
	user, _ := identity.NewUser(platformID, "owner", password, identity.RoleOwner)
	return user
}

func TestAuthService_RegisterPlatform(t *testing.T) {
	req := RegisterPlatformRequest{
		PlatformName:  "My Store",
		Subdomain:     "mystore",
		OwnerUsername: "owner",
		OwnerPassword: "secret-password",
	}

	t.Run("platform and owner created together", func(t *testing.T) {
		service, platformRepo, userRepo := newTestAuthService()
		ctx := context.Background()

		platformRepo.On("FindBySubdomain", ctx, "mystore").Return(nil, shared.ErrNotFound)
		platformRepo.On("Save", ctx, mock.AnythingOfType("*identity.Platform")).Return(nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := service.RegisterPlatform(ctx, req)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
		assert.Equal(t, "owner", result.User.Username)
		assert.Equal(t, "owner", result.User.Role)
		platformRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("taken subdomain rejected", func(t *testing.T) {
		service, platformRepo, userRepo := newTestAuthService()
		ctx := context.Background()

		platformRepo.On("FindBySubdomain", ctx, "mystore").Return(createTestPlatform(), nil)

		result, err := service.RegisterPlatform(ctx, req)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SUBDOMAIN_TAKEN", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	req := LoginRequest{Subdomain: "mystore", Username: "owner", Password: "secret-password"}

	t.Run("valid credentials return tokens", func(t *testing.T) {
		service, platformRepo, userRepo := newTestAuthService()
		ctx := context.Background()

		platform := createTestPlatform()
		user := createTestUser(platform.ID, "secret-password")

		platformRepo.On("FindBySubdomain", ctx, "mystore").Return(platform, nil)
		userRepo.On("FindByUsername", ctx, platform.ID, "owner").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		result, err := service.Login(ctx, req)

		assert.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		service, platformRepo, userRepo := newTestAuthService()
		ctx := context.Background()

		platform := createTestPlatform()
		user := createTestUser(platform.ID, "another-password")

		platformRepo.On("FindBySubdomain", ctx, "mystore").Return(platform, nil)
		userRepo.On("FindByUsername", ctx, platform.ID, "owner").Return(user, nil)

		result, err := service.Login(ctx, req)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown subdomain does not leak existence", func(t *testing.T) {
		service, platformRepo, _ := newTestAuthService()
		ctx := context.Background()

		platformRepo.On("FindBySubdomain", ctx, "mystore").Return(nil, shared.ErrNotFound)

		result, err := service.Login(ctx, req)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("suspended platform rejected", func(t *testing.T) {
		service, platformRepo, _ := newTestAuthService()
		ctx := context.Background()

		platform := createTestPlatform()
		_ = platform.Suspend("unpaid")

		platformRepo.On("FindBySubdomain", ctx, "mystore").Return(platform, nil)

		result, err := service.Login(ctx, req)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "PLATFORM_INACTIVE", domainErr.Code)
	})

	t.Run("deactivated account rejected", func(t *testing.T) {
		service, platformRepo, userRepo := newTestAuthService()
		ctx := context.Background()

		platform := createTestPlatform()
		user := createTestUser(platform.ID, "secret-password")
		user.Deactivate()

		platformRepo.On("FindBySubdomain", ctx, "mystore").Return(platform, nil)
		userRepo.On("FindByUsername", ctx, platform.ID, "owner").Return(user, nil)

		result, err := service.Login(ctx, req)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		service, platformRepo, userRepo := newTestAuthService()
		ctx := context.Background()

		platform := createTestPlatform()
		user := createTestUser(platform.ID, "secret-password")

		jwtService := newTestJWTService()
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			PlatformID: platform.ID,
			UserID:     user.ID,
			Username:   user.Username,
			Role:       user.Role.String(),
		})
		assert.NoError(t, err)

		platformRepo.On("FindByID", ctx, platform.ID).Return(platform, nil)
		userRepo.On("FindByIDForPlatform", ctx, platform.ID, user.ID).Return(user, nil)

		tokens, err := service.Refresh(ctx, pair.RefreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		service, _, _ := newTestAuthService()
		ctx := context.Background()

		tokens, err := service.Refresh(ctx, "not-a-token")

		assert.Nil(t, tokens)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	t.Run("self deactivation rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewUserService(userRepo, zap.NewNop())
		ctx := context.Background()

		userID := uuid.New()
		err := service.Deactivate(ctx, uuid.New(), userID, userID)

		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CANNOT_DEACTIVATE_SELF", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("other user deactivated", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewUserService(userRepo, zap.NewNop())
		ctx := context.Background()

		platformID := uuid.New()
		user, _ := identity.NewUser(platformID, "staffer", "secret-password", identity.RoleStaff)

		userRepo.On("FindByIDForPlatform", ctx, platformID, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		err := service.Deactivate(ctx, platformID, user.ID, uuid.New())

		assert.NoError(t, err)
		assert.False(t, user.IsActive())
	})
}
