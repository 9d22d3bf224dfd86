package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the persisted shape of a payment document.
// Amount is stored as a decimal string to avoid float drift.
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	EventID   primitive.ObjectID `bson:"eventId"`
	Amount    string             `bson:"amount"`
	Status    string             `bson:"status"`
	Reference string             `bson:"reference,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
