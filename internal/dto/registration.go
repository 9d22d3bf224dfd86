package dto

import (
	"github.com/festra/event_registration_app/internal/core/domain"
)

// RegisterForEventRequest is the payload for signing up for an event.
// Amount is a decimal string; Reference is the out-of-band payment reference.
type RegisterForEventRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Reference string `json:"reference"`
}

// PhysicalVerificationResponse mirrors the check-in sub-state; verifierId is
// present exactly when status is true.
type PhysicalVerificationResponse struct {
	Status     bool   `json:"status"`
	VerifierID string `json:"verifierId,omitempty"`
}

// RegistrationResponse is the external representation of a registration
// sub-record.
type RegistrationResponse struct {
	EventID              string                       `json:"eventId"`
	PaymentID            string                       `json:"paymentId"`
	PhysicalVerification PhysicalVerificationResponse `json:"physicalVerification"`
}

// ToRegistrationResponse converts a domain registration sub-record.
func ToRegistrationResponse(r domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		EventID:   r.EventID,
		PaymentID: r.PaymentID,
		PhysicalVerification: PhysicalVerificationResponse{
			Status:     r.PhysicalVerification.Status,
			VerifierID: r.PhysicalVerification.VerifierID,
		},
	}
}

// ToRegistrationResponseSlice converts domain registration sub-records.
func ToRegistrationResponseSlice(rs []domain.Registration) []RegistrationResponse {
	out := make([]RegistrationResponse, len(rs))
	for i, r := range rs {
		out[i] = ToRegistrationResponse(r)
	}
	return out
}

// RegistrationDetail is a flattened registration row for the admin
// registration listing (user x event).
type RegistrationDetail struct {
	UserID               string                       `json:"userID"`
	FirstName            string                       `json:"firstName"`
	LastName             string                       `json:"lastName"`
	Email                string                       `json:"email"`
	EventID              string                       `json:"eventId"`
	PaymentID            string                       `json:"paymentId"`
	PhysicalVerification PhysicalVerificationResponse `json:"physicalVerification"`
}

// ListRegistrationsResponse wraps one page of the flattened admin
// registration listing.
type ListRegistrationsResponse struct {
	Registrations []RegistrationDetail `json:"registrations"`
	Count         int64                `json:"count"`
	ResultPerPage int                  `json:"resultPerPage"`
	CurrentPage   int                  `json:"currentPage"`
}

// PaymentResponse is the external representation of a payment record.
type PaymentResponse struct {
	PaymentID string `json:"paymentID"`
	UserID    string `json:"userID"`
	EventID   string `json:"eventID"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
}

// ToPaymentResponse converts a domain payment.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		UserID:    p.UserID,
		EventID:   p.EventID,
		Amount:    p.Amount.String(),
		Status:    string(p.Status),
		Reference: p.Reference,
	}
}
