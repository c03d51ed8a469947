package identity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/identity"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/infrastructure/auth"
)

// AuthService handles registration and authentication
type AuthService struct {
	platformRepo identity.PlatformRepository
	userRepo     identity.UserRepository
	jwtService   *auth.JWTService
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	platformRepo identity.PlatformRepository,
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		platformRepo: platformRepo,
		userRepo:     userRepo,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// RegisterPlatform creates a platform and its owner account in one step
func (s *AuthService) RegisterPlatform(ctx context.Context, req RegisterPlatformRequest) (*LoginResult, error) {
	if _, err := s.platformRepo.FindBySubdomain(ctx, req.Subdomain); err == nil {
		return nil, shared.NewDomainError("SUBDOMAIN_TAKEN", "Subdomain is already in use")
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	platform, err := identity.NewPlatform(req.PlatformName, req.Subdomain)
	if err != nil {
		return nil, err
	}
	platform.OwnerPhone = req.OwnerPhone

	owner, err := identity.NewUser(platform.ID, req.OwnerUsername, req.OwnerPassword, identity.RoleOwner)
	if err != nil {
		return nil, err
	}

	if err := s.platformRepo.Save(ctx, platform); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	s.logger.Info("platform registered",
		zap.String("platform_id", platform.ID.String()),
		zap.String("subdomain", platform.Subdomain),
	)

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		PlatformID: platform.ID,
		UserID:     owner.ID,
		Username:   owner.Username,
		Role:       owner.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{Tokens: tokens, User: ToUserResponse(owner)}, nil
}

// Login authenticates a user against a platform and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	platform, err := s.platformRepo.FindBySubdomain(ctx, req.Subdomain)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
		}
		return nil, err
	}

	if !platform.CanOperate() {
		s.logger.Warn("login rejected for inoperable platform",
			zap.String("platform_id", platform.ID.String()),
			zap.String("status", platform.Status.String()),
		)
		return nil, shared.NewDomainError("PLATFORM_INACTIVE", "Platform is not active")
	}

	user, err := s.userRepo.FindByUsername(ctx, platform.ID, req.Username)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
		}
		return nil, err
	}

	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("invalid password attempt",
			zap.String("platform_id", platform.ID.String()),
			zap.String("username", req.Username),
		)
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("failed to record login time", zap.Error(err))
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		PlatformID: platform.ID,
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{Tokens: tokens, User: ToUserResponse(user)}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The user and
// platform are re-checked so a suspension takes effect at the next refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	platformID, err := claims.GetPlatformUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is malformed")
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is malformed")
	}

	platform, err := s.platformRepo.FindByID(ctx, platformID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Platform no longer exists")
	}
	if !platform.CanOperate() {
		return nil, shared.NewDomainError("PLATFORM_INACTIVE", "Platform is not active")
	}

	user, err := s.userRepo.FindByIDForPlatform(ctx, platformID, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "User no longer exists")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	return s.jwtService.RefreshTokenPair(refreshToken, user.Username, user.Role.String())
}
