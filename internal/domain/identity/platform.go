package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/tajer/backend/internal/domain/shared"
)

// PlatformStatus represents the subscription state of a platform
type PlatformStatus string

const (
	PlatformStatusActive              PlatformStatus = "active"
	PlatformStatusSuspended           PlatformStatus = "suspended"
	PlatformStatusSubscriptionExpired PlatformStatus = "subscription_expired"
	PlatformStatusCancelled           PlatformStatus = "cancelled"
)

// IsValid checks if the status is a valid PlatformStatus
func (s PlatformStatus) IsValid() bool {
	switch s {
	case PlatformStatusActive, PlatformStatusSuspended,
		PlatformStatusSubscriptionExpired, PlatformStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PlatformStatus
func (s PlatformStatus) String() string {
	return string(s)
}

// CanOperate returns true if the platform may serve requests
func (s PlatformStatus) CanOperate() bool {
	return s == PlatformStatusActive
}

var subdomainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{1,61}[a-z0-9])?$`)

// Platform is a merchant storefront, the tenant of the system. All other
// aggregates are scoped to a platform.
type Platform struct {
	shared.BaseAggregateRoot
	Name                  string         `gorm:"type:varchar(200);not null"`
	Subdomain             string         `gorm:"type:varchar(63);not null;uniqueIndex"`
	OwnerPhone            string         `gorm:"type:varchar(30)"`
	WhatsAppNumber        string         `gorm:"type:varchar(30)"`
	LogoKey               string         `gorm:"type:varchar(500)"`
	Status                PlatformStatus `gorm:"type:varchar(30);not null;default:'active';index"`
	SubscriptionExpiresAt *time.Time
	SuspendedReason       string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Platform) TableName() string {
	return "platforms"
}

// NewPlatform creates a platform in active status
func NewPlatform(name, subdomain string) (*Platform, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PLATFORM_NAME", "Platform name cannot be empty")
	}
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if !subdomainRegex.MatchString(subdomain) {
		return nil, shared.NewDomainError("INVALID_SUBDOMAIN", "Subdomain must be lowercase alphanumeric with hyphens")
	}

	platform := &Platform{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Subdomain:         subdomain,
		Status:            PlatformStatusActive,
	}
	platform.AddDomainEvent(NewPlatformCreatedEvent(platform))

	return platform, nil
}

// Update modifies platform profile fields
func (p *Platform) Update(name, ownerPhone, whatsAppNumber string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PLATFORM_NAME", "Platform name cannot be empty")
	}

	p.Name = name
	p.OwnerPhone = strings.TrimSpace(ownerPhone)
	p.WhatsAppNumber = strings.TrimSpace(whatsAppNumber)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetLogo sets the platform logo storage key
func (p *Platform) SetLogo(key string) {
	p.LogoKey = key
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Suspend suspends the platform
func (p *Platform) Suspend(reason string) error {
	if p.Status == PlatformStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot suspend a cancelled platform")
	}

	p.Status = PlatformStatusSuspended
	p.SuspendedReason = reason
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	p.AddDomainEvent(NewPlatformStatusChangedEvent(p))

	return nil
}

// Reactivate returns a suspended or expired platform to active
func (p *Platform) Reactivate() error {
	if p.Status == PlatformStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reactivate a cancelled platform")
	}

	p.Status = PlatformStatusActive
	p.SuspendedReason = ""
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	p.AddDomainEvent(NewPlatformStatusChangedEvent(p))

	return nil
}

// Cancel permanently cancels the platform
func (p *Platform) Cancel() {
	p.Status = PlatformStatusCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	p.AddDomainEvent(NewPlatformStatusChangedEvent(p))
}

// ExtendSubscription pushes the expiry forward and reactivates an expired
// platform
func (p *Platform) ExtendSubscription(until time.Time) error {
	if p.SubscriptionExpiresAt != nil && until.Before(*p.SubscriptionExpiresAt) {
		return shared.NewDomainError("INVALID_EXPIRY", "New expiry cannot be earlier than current expiry")
	}

	p.SubscriptionExpiresAt = &until
	if p.Status == PlatformStatusSubscriptionExpired {
		p.Status = PlatformStatusActive
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkSubscriptionExpired moves an active platform whose expiry has passed
func (p *Platform) MarkSubscriptionExpired(now time.Time) bool {
	if p.Status != PlatformStatusActive || p.SubscriptionExpiresAt == nil {
		return false
	}
	if now.Before(*p.SubscriptionExpiresAt) {
		return false
	}

	p.Status = PlatformStatusSubscriptionExpired
	p.UpdatedAt = now
	p.IncrementVersion()
	p.AddDomainEvent(NewPlatformStatusChangedEvent(p))

	return true
}

// CanOperate returns true if the platform may serve requests
func (p *Platform) CanOperate() bool {
	return p.Status.CanOperate()
}
