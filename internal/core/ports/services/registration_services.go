package services

import (
	"context"

	"github.com/festra/event_registration_app/internal/core/domain"
	"github.com/festra/event_registration_app/internal/dto"
)

// RegistrationSvcFacade runs the registration workflow: capacity-guarded
// signup, physical verification and admin removal.
type RegistrationSvcFacade interface {
	// RegisterForEvent records a payment, reserves a capacity slot and appends
	// the registration sub-record to the user. ErrCapacityExceeded when the
	// event is full, ErrDuplicate when the user is already registered.
	RegisterForEvent(ctx context.Context, userID string, eventID string, req dto.RegisterForEventRequest) (*domain.Registration, error)

	// MarkPhysicalVerification sets the check-in state to verified by
	// verifierID. Re-verification of an already-verified registration is a
	// no-op; the original verifier is retained.
	MarkPhysicalVerification(ctx context.Context, userID string, eventID string, verifierID string) (*domain.Registration, error)

	// DeleteRegistration removes one user's registration for one event and
	// releases the capacity slot.
	DeleteRegistration(ctx context.Context, userID string, eventID string) error

	// ListRegistrations returns the flattened user x event registration rows,
	// paginated.
	ListRegistrations(ctx context.Context, page int, perPage int) (*dto.ListRegistrationsResponse, error)

	// GetPayment retrieves the payment record referenced by a registration
	// sub-record's paymentId.
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
}
