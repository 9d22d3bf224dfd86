package repositories

import (
	"context"

	"github.com/festra/event_registration_app/internal/core/domain"
)

// PaymentRepositoryFacade persists the payment records referenced by
// registration sub-records.
type PaymentRepositoryFacade interface {
	// SavePayment persists a new payment and returns it with its assigned ID.
	SavePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error)

	// FindPaymentByID retrieves a specific payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
}
