package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/tajer/backend/internal/domain/identity"
	"github.com/tajer/backend/internal/infrastructure/auth"
)

// RegisterPlatformRequest represents a request to register a new platform
// together with its owner account
type RegisterPlatformRequest struct {
	PlatformName  string `json:"platform_name" binding:"required,min=2,max=200"`
	Subdomain     string `json:"subdomain" binding:"required,min=3,max=63"`
	OwnerPhone    string `json:"owner_phone" binding:"max=30"`
	OwnerUsername string `json:"owner_username" binding:"required,min=3,max=50"`
	OwnerPassword string `json:"owner_password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a login request scoped to a platform subdomain
type LoginRequest struct {
	Subdomain string `json:"subdomain" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResult carries tokens and the authenticated user
type LoginResult struct {
	Tokens *auth.TokenPair `json:"tokens"`
	User   UserResponse    `json:"user"`
}

// CreateUserRequest represents a request to create a staff user
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Phone       string `json:"phone" binding:"max=30"`
	Role        string `json:"role" binding:"required,oneof=owner staff"`
}

// UpdateUserRequest represents a request to update a user's profile
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
}

// ChangePasswordRequest represents a password change by the user themselves
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdatePlatformRequest represents a request to update platform settings
type UpdatePlatformRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=200"`
	OwnerPhone     string `json:"owner_phone" binding:"max=30"`
	WhatsAppNumber string `json:"whatsapp_number" binding:"max=30"`
}

// SuspendPlatformRequest carries the suspension reason
type SuspendPlatformRequest struct {
	Reason string `json:"reason" binding:"required,min=2,max=500"`
}

// ExtendSubscriptionRequest carries the new subscription end date
type ExtendSubscriptionRequest struct {
	Until time.Time `json:"until" binding:"required"`
}

// PlatformResponse represents a platform in API responses
type PlatformResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name"`
	Subdomain             string     `json:"subdomain"`
	OwnerPhone            string     `json:"owner_phone,omitempty"`
	WhatsAppNumber        string     `json:"whatsapp_number,omitempty"`
	LogoKey               string     `json:"logo_key,omitempty"`
	Status                string     `json:"status"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	SuspendedReason       string     `json:"suspended_reason,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	PlatformID  uuid.UUID  `json:"platform_id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToPlatformResponse converts a platform aggregate to its API representation
func ToPlatformResponse(p *identity.Platform) PlatformResponse {
	return PlatformResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Subdomain:             p.Subdomain,
		OwnerPhone:            p.OwnerPhone,
		WhatsAppNumber:        p.WhatsAppNumber,
		LogoKey:               p.LogoKey,
		Status:                p.Status.String(),
		SubscriptionExpiresAt: p.SubscriptionExpiresAt,
		SuspendedReason:       p.SuspendedReason,
		CreatedAt:             p.CreatedAt,
	}
}

// ToUserResponse converts a user aggregate to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		PlatformID:  u.PlatformID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Phone:       u.Phone,
		Role:        u.Role.String(),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
