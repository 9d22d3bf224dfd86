package services

import (
	"context"

	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	"github.com/festra/event_registration_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a filtered, paginated user listing.
	ListUsers(ctx context.Context, filter portsrepo.UserFilter) (*portsrepo.UserPage, error)

	// ListRegistrants retrieves the users registered for a given event.
	ListRegistrants(ctx context.Context, eventID string, filter portsrepo.UserFilter) (*portsrepo.UserPage, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// Register creates a new user with a hashed password, issues an OTP and
	// mails it for email verification.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// UpdateProfile applies the allowed profile mutations.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
}

// UserAuthSvc defines credential and secret flows.
type UserAuthSvc interface {
	// AuthenticateUser verifies email/password and rejects blocked accounts.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// VerifyEmail checks the presented OTP against the stored hash and marks
	// the user verified. ErrExpiredSecret past the window.
	VerifyEmail(ctx context.Context, userID string, otp string) (*domain.User, error)

	// ResendOneTimePassword regenerates the OTP, overwriting the previous
	// secret and window, and re-mails it.
	ResendOneTimePassword(ctx context.Context, userID string) error

	// ForgotPassword issues a reset token and mails the reset link. Unknown
	// emails return ErrNotFound.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword validates the presented reset token and replaces the
	// password. ErrExpiredSecret past the window.
	ResetPassword(ctx context.Context, token string, newPassword string) (*domain.User, error)
}

// UserAdminSvc defines the admin-only mutations.
type UserAdminSvc interface {
	// ToggleBlock flips the blocked flag and returns the updated user.
	ToggleBlock(ctx context.Context, userID string) (*domain.User, error)

	// UpdateRole sets the user's role and returns the updated user.
	UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)

	// DeleteUser removes the user.
	DeleteUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
	UserAdminSvc
}
