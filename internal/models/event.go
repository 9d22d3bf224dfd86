package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is the persisted shape of an event document in the events collection.
type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description,omitempty"`
	Participation string             `bson:"participation"`
	Category      string             `bson:"category"`
	Limit         int                `bson:"limit"`
	Registered    int                `bson:"registered"`
	IsVisible     bool               `bson:"isVisible"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}
