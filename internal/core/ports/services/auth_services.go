package services

import (
	"context"
	"time"

	"github.com/festra/event_registration_app/internal/core/domain"
)

// TokenPair is an issued access/refresh token pair with the access expiry.
type TokenPair struct {
	AccessToken       string
	AccessTokenExpiry time.Time
	RefreshToken      string
}

// TokenSvcFacade issues and validates the JWT pair. Issuing a refresh token
// overwrites the user's single stored token hash, so at most one session per
// user validates at a time.
type TokenSvcFacade interface {
	// IssueTokenPair generates an access and refresh token for the user and
	// stores the refresh token hash plus expiry on the user record.
	IssueTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error)

	// ValidateRefreshToken verifies the signature, expiry and stored-hash
	// match of a presented refresh token and returns the user it belongs to.
	ValidateRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)

	// RevokeRefreshToken clears the stored refresh token (logout).
	RevokeRefreshToken(ctx context.Context, userID string) error
}

// GoogleAuthSvcFacade handles Google sign-in, both the redirect code flow and
// direct ID-token validation.
type GoogleAuthSvcFacade interface {
	// GenerateStateString creates the CSRF state for the redirect flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the URL to redirect the user to.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForIDToken exchanges an authorization code and returns the
	// ID token embedded in the token response.
	ExchangeCodeForIDToken(ctx context.Context, code string) (string, error)

	// SignInWithGoogle validates the Google ID token, then finds, links or
	// creates the corresponding user. Google-created accounts are verified.
	SignInWithGoogle(ctx context.Context, idToken string) (*domain.User, error)
}
