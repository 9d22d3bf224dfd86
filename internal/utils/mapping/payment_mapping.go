package mapping

import (
	"github.com/festra/event_registration_app/internal/core/domain"
	"github.com/festra/event_registration_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToDomainPayment converts a persisted Payment document to a domain Payment.
// An unparseable stored amount maps to zero; amounts are always written from
// decimal.Decimal so this only happens with hand-edited documents.
func ToDomainPayment(m models.Payment) domain.Payment {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		amount = decimal.Zero
	}
	return domain.Payment{
		PaymentID: m.ID.Hex(),
		UserID:    m.UserID.Hex(),
		EventID:   m.EventID.Hex(),
		Amount:    amount,
		Status:    domain.PaymentStatus(m.Status),
		Reference: m.Reference,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
