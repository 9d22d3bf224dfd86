package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/festra/event_registration_app/internal/apperrors"
	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/dto"
	"github.com/festra/event_registration_app/internal/platform/config"
	"github.com/festra/event_registration_app/internal/utils"
)

// secretValidity is the window during which an issued OTP or reset token can
// be redeemed.
const secretValidity = 15 * time.Minute

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	mailer   *utils.Mailer
	cfg      *config.Config
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, mailer *utils.Mailer, cfg *config.Config) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// Register creates a user with the password hashed up front, then issues and
// mails the verification OTP. Hashing happens here, not in a persistence
// hook, so a user value is never in a half-hashed state.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", req.Email, apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Avatar:       req.Avatar,
		College:      req.College,
		PhoneNumber:  req.PhoneNumber,
		Role:         domain.RoleUser,
		Accounts:     []domain.AuthProvider{domain.ProviderEmail},
		Events:       []domain.Registration{},
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	created, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.issueOneTimePassword(ctx, created); err != nil {
		// The account exists; the OTP can be re-requested.
		slog.Default().Warn("Failed to issue verification OTP at signup",
			slog.String("user_id", created.UserID), slog.String("error", err.Error()))
	}

	return created, nil
}

// issueOneTimePassword generates a fresh OTP, overwrites the stored secret and
// window, and mails the plaintext. Regeneration invalidates any prior OTP.
func (s *userService) issueOneTimePassword(ctx context.Context, user *domain.User) error {
	otp, err := utils.GenerateOneTimePassword()
	if err != nil {
		return err
	}
	expire := time.Now().Add(secretValidity)
	if err := s.userRepo.SetOneTimePassword(ctx, user.UserID, utils.HashSecret(otp), expire); err != nil {
		return fmt.Errorf("failed to store one-time password: %w", err)
	}
	if err := s.mailer.SendOneTimePassword(user.FirstName, user.Email, otp); err != nil {
		return fmt.Errorf("failed to mail one-time password: %w", err)
	}
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if user.IsBlocked {
		return nil, fmt.Errorf("account is blocked: %w", apperrors.ErrForbidden)
	}
	return user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, userID string, otp string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return user, nil
	}
	if user.OneTimePasswordHash == "" || user.OneTimeExpire == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CompareSecretHash(otp, user.OneTimePasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.OneTimeExpire) {
		return nil, apperrors.ErrExpiredSecret
	}

	if err := s.userRepo.MarkVerified(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}
	user.IsVerified = true
	user.OneTimePasswordHash = ""
	user.OneTimeExpire = nil
	return user, nil
}

func (s *userService) ResendOneTimePassword(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return fmt.Errorf("account already verified: %w", apperrors.ErrValidation)
	}
	return s.issueOneTimePassword(ctx, user)
}

func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := utils.GenerateSecureRandomString(20)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expire := time.Now().Add(secretValidity)
	if err := s.userRepo.SetResetPasswordToken(ctx, user.UserID, utils.HashSecret(token), expire); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", s.cfg.FrontendBaseURL, token)
	if err := s.mailer.SendPasswordReset(user.FirstName, user.Email, resetURL); err != nil {
		return fmt.Errorf("failed to mail reset link: %w", err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, token string, newPassword string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByResetTokenHash(ctx, utils.HashSecret(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}
	if user.ResetPasswordExpire == nil || time.Now().After(*user.ResetPasswordExpire) {
		return nil, apperrors.ErrExpiredSecret
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.UserID, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.userRepo.ClearResetPasswordToken(ctx, user.UserID); err != nil {
		return nil, fmt.Errorf("failed to clear reset token: %w", err)
	}
	// A password reset ends the current session.
	if err := s.userRepo.ClearRefreshToken(ctx, user.UserID); err != nil {
		return nil, fmt.Errorf("failed to clear refresh token: %w", err)
	}
	user.PasswordHash = passwordHash
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

func (s *userService) ListUsers(ctx context.Context, filter portsrepo.UserFilter) (*portsrepo.UserPage, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = s.cfg.ResultPerPage
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", filter.Role, apperrors.ErrValidation)
	}
	return s.userRepo.FindUsers(ctx, filter)
}

func (s *userService) ListRegistrants(ctx context.Context, eventID string, filter portsrepo.UserFilter) (*portsrepo.UserPage, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = s.cfg.ResultPerPage
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.userRepo.FindRegistrants(ctx, eventID, filter)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.College != nil {
		user.College = *req.College
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateProfile(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *userService) ToggleBlock(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	blocked := !user.IsBlocked
	if err := s.userRepo.SetBlocked(ctx, userID, blocked); err != nil {
		return nil, fmt.Errorf("failed to toggle block: %w", err)
	}
	user.IsBlocked = blocked
	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.Role = role
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.DeleteUser(ctx, userID)
}
