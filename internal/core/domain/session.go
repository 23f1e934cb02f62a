package domain

import "time"

// Principal is the authenticated identity bound to a session. The zero value
// is the anonymous principal. Because a session holds exactly one Principal it
// can never be authenticated as a user and a provider at the same time.
type Principal struct {
	Role      Role   `json:"role"`
	AccountID string `json:"account_id"`
}

// Anonymous reports whether p carries no identity.
func (p Principal) Anonymous() bool {
	return p.Role == "" || p.AccountID == ""
}

// Session binds an opaque client token to a principal.
type Session struct {
	Token     string    `json:"-"`
	Principal Principal `json:"principal"`
	CreatedAt time.Time `json:"created_at"`
}

// Is reports whether the session is authenticated in the given role.
func (s Session) Is(role Role) bool {
	return !s.Principal.Anonymous() && s.Principal.Role == role
}

// RequireRole returns the account id bound to s for role, or
// ErrUnauthenticated when s is not authenticated in that role. A stale
// identity of the other role never satisfies the check.
func RequireRole(s Session, role Role) (string, error) {
	if !s.Is(role) {
		return "", ErrUnauthenticated
	}
	return s.Principal.AccountID, nil
}

// Destination is where a client should go after a successful login.
type Destination string

const (
	DestinationDiscovery    Destination = "discovery"
	DestinationProfileSetup Destination = "profile_setup"
	DestinationDashboard    Destination = "dashboard"
)
