package repositories

import (
	"context"
	"time"

	"github.com/festra/event_registration_app/internal/core/domain"
)

// UserFilter narrows user listings. Keyword matches first name, last name and
// email. Zero values mean "no filter". Page is 1-based.
type UserFilter struct {
	Keyword string
	Role    domain.Role
	Page    int
	PerPage int
}

// UserPage is one page of a filtered user listing, with the collection-wide
// count and the count matching the filter.
type UserPage struct {
	Users         []domain.User
	TotalCount    int64
	FilteredCount int64
}

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their email (the auth identity).
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByGoogleID retrieves a user by their linked Google account id.
	FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)

	// FindUserByResetTokenHash retrieves the user holding the given hashed
	// reset token, regardless of expiry (the caller checks the window).
	FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)

	// FindUsers retrieves a filtered, paginated user listing.
	FindUsers(ctx context.Context, filter UserFilter) (*UserPage, error)

	// FindRegistrants retrieves the users holding a registration for the given
	// event, paginated.
	FindRegistrants(ctx context.Context, eventID string, filter UserFilter) (*UserPage, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user and returns it with its assigned ID.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)

	// UpdateProfile updates the mutable profile fields of a user.
	UpdateProfile(ctx context.Context, user domain.User) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error

	// SetBlocked sets the blocked flag.
	SetBlocked(ctx context.Context, userID string, blocked bool) error

	// UpdateRole sets the user's role.
	UpdateRole(ctx context.Context, userID string, role domain.Role) error

	// LinkProvider adds an auth provider (and googleId when applicable) to the
	// user's account set.
	LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, googleID string) error

	// DeleteUser removes the user document.
	DeleteUser(ctx context.Context, userID string) error
}

// UserSecretWriter manages the expiring secrets and the single stored refresh
// token hash on a user document.
type UserSecretWriter interface {
	// SetRefreshToken overwrites the single stored refresh token hash and its
	// expiry, invalidating any previously issued refresh token.
	SetRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error

	// ClearRefreshToken removes the stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error

	// SetOneTimePassword overwrites the stored OTP hash and expiry.
	SetOneTimePassword(ctx context.Context, userID string, otpHash string, expire time.Time) error

	// MarkVerified sets isVerified and clears the OTP fields.
	MarkVerified(ctx context.Context, userID string) error

	// SetResetPasswordToken overwrites the stored reset token hash and expiry.
	SetResetPasswordToken(ctx context.Context, userID string, tokenHash string, expire time.Time) error

	// ClearResetPasswordToken removes the stored reset token fields.
	ClearResetPasswordToken(ctx context.Context, userID string) error
}

// RegistrationRow is one flattened user x event registration row produced by
// unwinding the embedded sub-records.
type RegistrationRow struct {
	UserID       string
	FirstName    string
	LastName     string
	Email        string
	Registration domain.Registration
}

// RegistrationRowPage is one page of flattened registration rows.
type RegistrationRowPage struct {
	Rows       []RegistrationRow
	TotalCount int64
}

// RegistrationReader reads registrations across users.
type RegistrationReader interface {
	// FindRegistration retrieves one user's sub-record for one event.
	FindRegistration(ctx context.Context, userID string, eventID string) (*domain.Registration, error)

	// FindRegistrationRows retrieves the flattened registration rows across
	// all users, paginated. Page is 1-based.
	FindRegistrationRows(ctx context.Context, page int, perPage int) (*RegistrationRowPage, error)
}

// RegistrationWriter mutates the registration sub-records embedded in a user
// document.
type RegistrationWriter interface {
	// AppendRegistration appends a registration sub-record. Returns
	// ErrDuplicate if the user already holds one for the event.
	AppendRegistration(ctx context.Context, userID string, reg domain.Registration) error

	// SetPhysicalVerification marks the sub-record verified by verifierID.
	// Already-verified sub-records are left untouched and reported via the
	// returned bool (false = no change).
	SetPhysicalVerification(ctx context.Context, userID string, eventID string, verifierID string) (bool, error)

	// RemoveRegistration removes the sub-record for the given event.
	RemoveRegistration(ctx context.Context, userID string, eventID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserSecretWriter
	RegistrationReader
	RegistrationWriter
}
