package domain

import (
	"strings"
	"time"
)

// Role identifies which account namespace an identity belongs to.
type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
)

// ParseRole maps a login role claim onto a Role. "serviceprovider" is the
// spelling older clients send and is accepted as an alias.
func ParseRole(claim string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(claim)) {
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleProvider), "serviceprovider":
		return RoleProvider, nil
	default:
		return "", ErrInvalidRole
	}
}

// Account holds the fields shared by both account kinds.
type Account struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// User is a customer requesting home-service visits.
type User struct {
	Account `bson:",inline"`
}

// Provider is a service professional. A provider only shows up in the
// directory once IsProfileComplete is set by the profile-setup step.
type Provider struct {
	Account `bson:",inline"`

	ServiceType   string  `json:"service_type" bson:"service_type"`
	Experience    int     `json:"experience" bson:"experience"`
	PricePerVisit float64 `json:"price_per_visit" bson:"price_per_visit"`
	City          string  `json:"city" bson:"city"`
	Pincode       string  `json:"pincode" bson:"pincode"`
	Address       string  `json:"address,omitempty" bson:"address,omitempty"`
	About         string  `json:"about" bson:"about"`

	IsProfileComplete bool    `json:"is_profile_complete" bson:"is_profile_complete"`
	IsAvailable       bool    `json:"is_available" bson:"is_available"`
	Rating            float64 `json:"rating" bson:"rating"`
	TotalJobs         int     `json:"total_jobs" bson:"total_jobs"`
}

// ProfileSetup is the partial update applied by provider profile setup.
// Nil fields are left untouched.
type ProfileSetup struct {
	Experience    *int
	PricePerVisit *float64
	City          *string
	Pincode       *string
	Address       *string
	About         *string
}

// ProviderEdit is the partial update applied by the provider profile editor.
type ProviderEdit struct {
	Name          *string
	Phone         *string
	City          *string
	Experience    *int
	PricePerVisit *float64
	About         *string
	IsAvailable   *bool
}

// UserSummary is the slice of a user shown to providers.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Summary returns the provider-facing view of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Phone: u.Phone}
}
