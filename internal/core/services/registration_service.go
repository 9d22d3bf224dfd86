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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type registrationService struct {
	userRepo    portsrepo.UserRepositoryFacade
	eventRepo   portsrepo.EventRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	cfg         *config.Config
}

// NewRegistrationService creates the registration workflow service.
func NewRegistrationService(
	userRepo portsrepo.UserRepositoryFacade,
	eventRepo portsrepo.EventRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	cfg *config.Config,
) portssvc.RegistrationSvcFacade {
	return &registrationService{
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		paymentRepo: paymentRepo,
		cfg:         cfg,
	}
}

// RegisterForEvent reserves a capacity slot with a conditional increment on
// the event document, records the payment, then appends the sub-record. The
// slot is released if the append fails, so the counter only leaks on a crash
// between the two writes.
func (s *registrationService) RegisterForEvent(ctx context.Context, userID string, eventID string, req dto.RegisterForEventRequest) (*domain.Registration, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range user.Events {
		if r.EventID == eventID {
			return nil, fmt.Errorf("already registered for event %s: %w", eventID, apperrors.ErrDuplicate)
		}
	}

	event, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsVisible {
		return nil, fmt.Errorf("event %s is not open for registration: %w", eventID, apperrors.ErrNotFound)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return nil, fmt.Errorf("invalid payment amount %q: %w", req.Amount, apperrors.ErrValidation)
	}

	if err := s.eventRepo.ReserveSlot(ctx, eventID); err != nil {
		return nil, err
	}

	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	}
	now := time.Now()
	payment, err := s.paymentRepo.SavePayment(ctx, domain.Payment{
		UserID:     userID,
		EventID:    eventID,
		Amount:     amount,
		Status:     domain.PaymentCompleted,
		Reference:  reference,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	})
	if err != nil {
		s.releaseSlot(ctx, eventID)
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	reg := domain.Registration{
		EventID:              eventID,
		PaymentID:            payment.PaymentID,
		PhysicalVerification: domain.Unverified(),
	}
	if err := s.userRepo.AppendRegistration(ctx, userID, reg); err != nil {
		s.releaseSlot(ctx, eventID)
		return nil, fmt.Errorf("failed to append registration: %w", err)
	}

	return &reg, nil
}

func (s *registrationService) releaseSlot(ctx context.Context, eventID string) {
	if err := s.eventRepo.ReleaseSlot(ctx, eventID); err != nil {
		slog.Default().Error("Failed to release reserved event slot",
			slog.String("event_id", eventID), slog.String("error", err.Error()))
	}
}

// MarkPhysicalVerification is a no-op for already-verified registrations; the
// first verifier's attribution stands.
func (s *registrationService) MarkPhysicalVerification(ctx context.Context, userID string, eventID string, verifierID string) (*domain.Registration, error) {
	if _, err := domain.VerifiedBy(verifierID); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	if _, err := s.userRepo.SetPhysicalVerification(ctx, userID, eventID, verifierID); err != nil {
		return nil, err
	}

	return s.userRepo.FindRegistration(ctx, userID, eventID)
}

func (s *registrationService) DeleteRegistration(ctx context.Context, userID string, eventID string) error {
	if err := s.userRepo.RemoveRegistration(ctx, userID, eventID); err != nil {
		return err
	}
	if err := s.eventRepo.ReleaseSlot(ctx, eventID); err != nil {
		// The registration is gone; a stale counter beats a failed delete.
		if !errors.Is(err, apperrors.ErrNotFound) {
			slog.Default().Error("Failed to release slot after registration delete",
				slog.String("event_id", eventID), slog.String("error", err.Error()))
		}
	}
	return nil
}

func (s *registrationService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

func (s *registrationService) ListRegistrations(ctx context.Context, page int, perPage int) (*dto.ListRegistrationsResponse, error) {
	if perPage <= 0 {
		perPage = s.cfg.ResultPerPage
	}
	if page <= 0 {
		page = 1
	}

	rowPage, err := s.userRepo.FindRegistrationRows(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	rows := make([]dto.RegistrationDetail, len(rowPage.Rows))
	for i, r := range rowPage.Rows {
		rows[i] = dto.RegistrationDetail{
			UserID:    r.UserID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			EventID:   r.Registration.EventID,
			PaymentID: r.Registration.PaymentID,
			PhysicalVerification: dto.PhysicalVerificationResponse{
				Status:     r.Registration.PhysicalVerification.Status,
				VerifierID: r.Registration.PhysicalVerification.VerifierID,
			},
		}
	}

	return &dto.ListRegistrationsResponse{
		Registrations: rows,
		Count:         rowPage.TotalCount,
		ResultPerPage: perPage,
		CurrentPage:   page,
	}, nil
}
