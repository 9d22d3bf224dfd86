package mapping

import (
	"github.com/festra/event_registration_app/internal/core/domain"
	"github.com/festra/event_registration_app/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToDomainUser converts a persisted User document to a domain User.
func ToDomainUser(m models.User) domain.User {
	accounts := make([]domain.AuthProvider, len(m.Accounts))
	for i, a := range m.Accounts {
		accounts[i] = domain.AuthProvider(a)
	}
	return domain.User{
		UserID:       m.ID.Hex(),
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Avatar:       m.Avatar,
		College:      m.College,
		PhoneNumber:  m.PhoneNumber,
		Role:         domain.Role(m.Role),
		Accounts:     accounts,
		IsVerified:   m.IsVerified,
		IsBlocked:    m.IsBlocked,
		GoogleID:     m.GoogleID,
		Events:       ToDomainRegistrationSlice(m.Events),

		RefreshTokenHash:   m.RefreshTokenHash,
		RefreshTokenExpiry: m.RefreshTokenExpiry,

		OneTimePasswordHash:    m.OneTimePasswordHash,
		OneTimeExpire:          m.OneTimeExpire,
		ResetPasswordTokenHash: m.ResetPasswordTokenHash,
		ResetPasswordExpire:    m.ResetPasswordExpire,

		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainUserSlice converts a slice of User documents to domain Users.
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToDomainRegistration converts an embedded registration sub-record.
func ToDomainRegistration(m models.UserEvent) domain.Registration {
	pv := domain.Unverified()
	if m.PhysicalVerification.Status && m.PhysicalVerification.VerifierID != nil {
		pv = domain.PhysicalVerification{
			Status:     true,
			VerifierID: m.PhysicalVerification.VerifierID.Hex(),
		}
	}
	return domain.Registration{
		EventID:              m.EventID.Hex(),
		PaymentID:            m.PaymentID.Hex(),
		PhysicalVerification: pv,
	}
}

// ToDomainRegistrationSlice converts embedded registration sub-records.
func ToDomainRegistrationSlice(ms []models.UserEvent) []domain.Registration {
	ds := make([]domain.Registration, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRegistration(m)
	}
	return ds
}

// ToModelRegistration converts a domain registration for embedding. eventID
// and paymentID are already-validated object ids.
func ToModelRegistration(eventID, paymentID primitive.ObjectID, pv domain.PhysicalVerification) models.UserEvent {
	m := models.UserEvent{
		EventID:   eventID,
		PaymentID: paymentID,
	}
	if pv.Status {
		if oid, err := primitive.ObjectIDFromHex(pv.VerifierID); err == nil {
			m.PhysicalVerification = models.PhysicalVerification{Status: true, VerifierID: &oid}
		}
	}
	return m
}
