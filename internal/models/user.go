package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persisted shape of a user document in the users collection.
// Registrations are embedded for read locality: one read yields the profile
// and everything the user is signed up for.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"firstName"`
	LastName     string             `bson:"lastName"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password,omitempty"`
	Avatar       string             `bson:"avatar,omitempty"`
	College      string             `bson:"college"`
	PhoneNumber  string             `bson:"phoneNumber"`
	Role         string             `bson:"role"`
	Accounts     []string           `bson:"account"`
	IsVerified   bool               `bson:"isVerified"`
	IsBlocked    bool               `bson:"isBlocked"`
	GoogleID     string             `bson:"googleId,omitempty"`
	Events       []UserEvent        `bson:"events"`

	RefreshTokenHash   string     `bson:"refreshToken,omitempty"`
	RefreshTokenExpiry *time.Time `bson:"refreshTokenExpire,omitempty"`

	OneTimePasswordHash    string     `bson:"oneTimePassword,omitempty"`
	OneTimeExpire          *time.Time `bson:"oneTimeExpire,omitempty"`
	ResetPasswordTokenHash string     `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpire    *time.Time `bson:"resetPasswordExpire,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// UserEvent is a registration sub-record embedded in a user document.
type UserEvent struct {
	EventID              primitive.ObjectID   `bson:"eventId"`
	PaymentID            primitive.ObjectID   `bson:"paymentId"`
	PhysicalVerification PhysicalVerification `bson:"physicalVerification"`
}

// PhysicalVerification is the check-in sub-state of a registration.
// VerifierID is written only together with Status=true.
type PhysicalVerification struct {
	Status     bool                `bson:"status"`
	VerifierID *primitive.ObjectID `bson:"verifierId,omitempty"`
}
