package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/festra/event_registration_app/internal/apperrors"
	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/platform/config"
	"github.com/festra/event_registration_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements TokenSvcFacade. Access and refresh tokens are signed
// with distinct secrets; only the hash of the current refresh token is stored,
// one per user, so issuing a new one invalidates the previous session.
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

func (s *tokenService) IssueTokenPair(ctx context.Context, user *domain.User) (*portssvc.TokenPair, error) {
	accessExpiry := time.Now().Add(s.cfg.AccessTokenExpiry)
	accessToken, err := utils.GenerateAccessToken(
		user.UserID, user.Email, string(user.Role),
		s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiry, s.cfg.JWTIssuer,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(
		user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiry, s.cfg.JWTIssuer,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshExpiry := time.Now().Add(s.cfg.RefreshTokenExpiry)
	if err := s.userRepo.SetRefreshToken(ctx, user.UserID, utils.HashSecret(refreshToken), refreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &portssvc.TokenPair{
		AccessToken:       accessToken,
		AccessTokenExpiry: accessExpiry,
		RefreshToken:      refreshToken,
	}, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	claims, err := utils.ParseRefreshToken(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrRefreshTokenExpired
		}
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiry == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiry) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	// A token that verifies but does not match the stored hash belongs to a
	// superseded session.
	if !utils.CompareSecretHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if user.IsBlocked {
		return nil, fmt.Errorf("account is blocked: %w", apperrors.ErrForbidden)
	}

	return user, nil
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// --- GoogleAuthSvcFacade implementation ---

type googleAuthService struct {
	cfg          *config.Config
	userRepo     portsrepo.UserRepositoryFacade
	oauth2Config *oauth2.Config
}

// NewGoogleAuthService creates a new instance of googleAuthService.
func NewGoogleAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.GoogleAuthSvcFacade {
	return &googleAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *googleAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

func (s *googleAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

func (s *googleAuthService) ExchangeCodeForIDToken(ctx context.Context, code string) (string, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", errors.New("token response did not include an id_token")
	}
	return idToken, nil
}

func (s *googleAuthService) SignInWithGoogle(ctx context.Context, idToken string) (*domain.User, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idToken, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("google ID token is missing the email claim")
	}

	// Existing Google-linked account.
	user, err := s.userRepo.FindUserByGoogleID(ctx, payload.Subject)
	if err == nil {
		if user.IsBlocked {
			return nil, fmt.Errorf("account is blocked: %w", apperrors.ErrForbidden)
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google account: %w", err)
	}

	// Existing email account: link the provider.
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if user.IsBlocked {
			return nil, fmt.Errorf("account is blocked: %w", apperrors.ErrForbidden)
		}
		if err := s.userRepo.LinkProvider(ctx, user.UserID, domain.ProviderGoogle, payload.Subject); err != nil {
			return nil, fmt.Errorf("failed to link google provider: %w", err)
		}
		if !user.IsVerified {
			// Google already verified this email.
			if err := s.userRepo.MarkVerified(ctx, user.UserID); err != nil {
				return nil, fmt.Errorf("failed to mark google user verified: %w", err)
			}
			user.IsVerified = true
		}
		user.GoogleID = payload.Subject
		if !user.HasProvider(domain.ProviderGoogle) {
			user.Accounts = append(user.Accounts, domain.ProviderGoogle)
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email account: %w", err)
	}

	// New federated-only account, pre-verified, no password hash.
	firstName, _ := payload.Claims["given_name"].(string)
	lastName, _ := payload.Claims["family_name"].(string)
	avatar, _ := payload.Claims["picture"].(string)
	now := time.Now()
	created, err := s.userRepo.SaveUser(ctx, domain.User{
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		Avatar:     avatar,
		Role:       domain.RoleUser,
		Accounts:   []domain.AuthProvider{domain.ProviderGoogle},
		IsVerified: true,
		GoogleID:   payload.Subject,
		Events:     []domain.Registration{},
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	return created, nil
}
