package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/festra/event_registration_app/internal/apperrors"
	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	"github.com/festra/event_registration_app/internal/models"
	"github.com/festra/event_registration_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoEventRepository struct {
	coll *mongo.Collection
}

func newMongoEventRepository(db *mongo.Database) portsrepo.EventRepositoryFacade {
	return &MongoEventRepository{coll: db.Collection("events")}
}

// Ensure MongoEventRepository implements portsrepo.EventRepositoryFacade
var _ portsrepo.EventRepositoryFacade = (*MongoEventRepository)(nil)

func toModelEvent(d domain.Event) models.Event {
	return models.Event{
		Title:         d.Title,
		Description:   d.Description,
		Participation: string(d.Participation),
		Category:      string(d.Category),
		Limit:         d.Limit,
		Registered:    d.Registered,
		IsVisible:     d.IsVisible,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *MongoEventRepository) SaveEvent(ctx context.Context, event domain.Event) (*domain.Event, error) {
	modelEvent := toModelEvent(event)
	modelEvent.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, modelEvent); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("event %s: %w", event.Title, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	domainEvent := mapping.ToDomainEvent(modelEvent)
	return &domainEvent, nil
}

func (r *MongoEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	oid, err := objectIDFromHex(eventID)
	if err != nil {
		return nil, err
	}

	var modelEvent models.Event
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&modelEvent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event %s: %w", eventID, err)
	}
	domainEvent := mapping.ToDomainEvent(modelEvent)
	return &domainEvent, nil
}

func (r *MongoEventRepository) FindEvents(ctx context.Context, filter portsrepo.EventFilter) (*portsrepo.EventPage, error) {
	base := bson.M{}
	query := bson.M{}
	if filter.VisibleOnly {
		base["isVisible"] = true
		query["isVisible"] = true
	}
	if filter.Keyword != "" {
		query["title"] = primitive.Regex{Pattern: filter.Keyword, Options: "i"}
	}
	if filter.Participation != "" {
		query["participation"] = string(filter.Participation)
	}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}

	total, err := r.coll.CountDocuments(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	filtered, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count filtered events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.PerPage)).
		SetLimit(int64(filter.PerPage))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}
	var modelEvents []models.Event
	if err := cursor.All(ctx, &modelEvents); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	return &portsrepo.EventPage{
		Events:        mapping.ToDomainEventSlice(modelEvents),
		TotalCount:    total,
		FilteredCount: filtered,
	}, nil
}

func (r *MongoEventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	oid, err := objectIDFromHex(event.EventID)
	if err != nil {
		return err
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":         event.Title,
		"description":   event.Description,
		"participation": string(event.Participation),
		"category":      string(event.Category),
		"limit":         event.Limit,
		"isVisible":     event.IsVisible,
		"updatedAt":     event.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", event.EventID, err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoEventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	oid, err := objectIDFromHex(eventID)
	if err != nil {
		return err
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoEventRepository) ToggleAllVisibility(ctx context.Context) (int64, error) {
	// Pipeline update so every document flips its own current value.
	result, err := r.coll.UpdateMany(ctx, bson.M{}, bson.A{
		bson.M{"$set": bson.M{
			"isVisible": bson.M{"$not": "$isVisible"},
			"updatedAt": time.Now(),
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to toggle event visibility: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *MongoEventRepository) ReserveSlot(ctx context.Context, eventID string) error {
	oid, err := objectIDFromHex(eventID)
	if err != nil {
		return err
	}

	// The $expr guard makes increment-if-below-limit a single atomic step, so
	// two concurrent registrations can never both take the last slot.
	result, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":   oid,
			"$expr": bson.M{"$lt": bson.A{"$registered", "$limit"}},
		},
		bson.M{"$inc": bson.M{"registered": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to reserve slot for event %s: %w", eventID, err)
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindEventByID(ctx, eventID); err != nil {
			return err
		}
		return fmt.Errorf("event %s: %w", eventID, apperrors.ErrCapacityExceeded)
	}
	return nil
}

func (r *MongoEventRepository) ReleaseSlot(ctx context.Context, eventID string) error {
	oid, err := objectIDFromHex(eventID)
	if err != nil {
		return err
	}

	// Floor at zero so a double release cannot drive the counter negative.
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "registered": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"registered": -1}},
	)
	if err != nil {
		return fmt.Errorf("failed to release slot for event %s: %w", eventID, err)
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindEventByID(ctx, eventID); err != nil {
			return err
		}
	}
	return nil
}
