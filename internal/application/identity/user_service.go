package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/identity"
	"github.com/tajer/backend/internal/domain/shared"
)

// UserService handles staff account management within a platform
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a staff user within a platform
func (s *UserService) Create(ctx context.Context, platformID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	role := identity.UserRole(req.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}

	if _, err := s.userRepo.FindByUsername(ctx, platformID, req.Username); err == nil {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already in use")
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	user, err := identity.NewUser(platformID, req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("platform_id", platformID.String()),
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)

	response := ToUserResponse(user)
	return &response, nil
}

// Get retrieves a user by ID within a platform
func (s *UserService) Get(ctx context.Context, platformID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForPlatform(ctx, platformID, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List lists users for a platform
func (s *UserService) List(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]UserResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	users, err := s.userRepo.FindAllForPlatform(ctx, platformID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.CountForPlatform(ctx, platformID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, total, nil
}

// Update changes a user's profile fields
func (s *UserService) Update(ctx context.Context, platformID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForPlatform(ctx, platformID, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword changes a user's own password after verifying the old one
func (s *UserService) ChangePassword(ctx context.Context, platformID, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByIDForPlatform(ctx, platformID, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// Deactivate disables a user's account. The platform owner cannot deactivate
// their own account.
func (s *UserService) Deactivate(ctx context.Context, platformID, userID, actorID uuid.UUID) error {
	if userID == actorID {
		return shared.NewDomainError("CANNOT_DEACTIVATE_SELF", "Cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByIDForPlatform(ctx, platformID, userID)
	if err != nil {
		return err
	}

	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}

// Activate re-enables a deactivated account
func (s *UserService) Activate(ctx context.Context, platformID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForPlatform(ctx, platformID, userID)
	if err != nil {
		return err
	}

	user.Activate()
	return s.userRepo.Save(ctx, user)
}
