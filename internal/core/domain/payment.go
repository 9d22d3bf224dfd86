package domain

import "github.com/shopspring/decimal"

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Payment is the record referenced by a registration sub-record's paymentId.
type Payment struct {
	PaymentID string          `json:"paymentID"`
	UserID    string          `json:"userID"`
	EventID   string          `json:"eventID"`
	Amount    decimal.Decimal `json:"amount"`
	Status    PaymentStatus   `json:"status"`
	Reference string          `json:"reference,omitempty"`
	Timestamps
}
