package domain

import (
	"fmt"
	"time"
)

// Role is the authorization role of a user.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// IsValid reports whether r is one of the declared roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	ProviderEmail  AuthProvider = "EMAIL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
// PasswordHash is empty for federated-only accounts.
type User struct {
	UserID       string         `json:"userID"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Avatar       string         `json:"avatar,omitempty"`
	College      string         `json:"college"`
	PhoneNumber  string         `json:"phoneNumber"`
	Role         Role           `json:"role"`
	Accounts     []AuthProvider `json:"account"`
	IsVerified   bool           `json:"isVerified"`
	IsBlocked    bool           `json:"isBlocked"`
	GoogleID     string         `json:"-"`
	Events       []Registration `json:"events"`

	// Single active session: hash of the current refresh token plus its expiry.
	RefreshTokenHash   string     `json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`

	// Expiring secrets, stored only as one-way hashes.
	OneTimePasswordHash    string     `json:"-"`
	OneTimeExpire          *time.Time `json:"-"`
	ResetPasswordTokenHash string     `json:"-"`
	ResetPasswordExpire    *time.Time `json:"-"`

	Timestamps
}

// HasProvider reports whether the user has linked the given auth provider.
func (u *User) HasProvider(p AuthProvider) bool {
	for _, a := range u.Accounts {
		if a == p {
			return true
		}
	}
	return false
}

// Registration is an event registration owned by a user. It is embedded in the
// user document and not independently addressable.
type Registration struct {
	EventID              string               `json:"eventId"`
	PaymentID            string               `json:"paymentId"`
	PhysicalVerification PhysicalVerification `json:"physicalVerification"`
}

// PhysicalVerification records the in-person check-in state of a registration.
// VerifierID is set if and only if Status is true; construct values through
// Unverified or VerifiedBy so the pairing cannot be violated.
type PhysicalVerification struct {
	Status     bool   `json:"status"`
	VerifierID string `json:"verifierId,omitempty"`
}

// Unverified returns the initial physical-verification state.
func Unverified() PhysicalVerification {
	return PhysicalVerification{}
}

// VerifiedBy returns a verified state attributed to the given staff member.
func VerifiedBy(verifierID string) (PhysicalVerification, error) {
	if verifierID == "" {
		return PhysicalVerification{}, fmt.Errorf("verifierID is required when marking a registration verified")
	}
	return PhysicalVerification{Status: true, VerifierID: verifierID}, nil
}
