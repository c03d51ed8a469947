package identity

import (
	"github.com/tajer/backend/internal/domain/shared"
)

const (
	EventTypePlatformCreated       = "identity.platform.created"
	EventTypePlatformStatusChanged = "identity.platform.status_changed"
	EventTypeUserCreated           = "identity.user.created"
)

// PlatformCreatedEvent is emitted when a platform is registered
type PlatformCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// NewPlatformCreatedEvent creates a platform created event
func NewPlatformCreatedEvent(platform *Platform) *PlatformCreatedEvent {
	return &PlatformCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlatformCreated, "Platform", platform.ID, platform.ID),
		Name:            platform.Name,
		Subdomain:       platform.Subdomain,
	}
}

// PlatformStatusChangedEvent is emitted on suspension, expiry, cancellation
// or reactivation
type PlatformStatusChangedEvent struct {
	shared.BaseDomainEvent
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// NewPlatformStatusChangedEvent creates a platform status changed event
func NewPlatformStatusChangedEvent(platform *Platform) *PlatformStatusChangedEvent {
	return &PlatformStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlatformStatusChanged, "Platform", platform.ID, platform.ID),
		Status:          platform.Status.String(),
		Reason:          platform.SuspendedReason,
	}
}

// UserCreatedEvent is emitted when a user account is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewUserCreatedEvent creates a user created event
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, "User", user.ID, user.PlatformID),
		Username:        user.Username,
		Role:            user.Role.String(),
	}
}
