package services

import (
	"context"

	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	"github.com/festra/event_registration_app/internal/dto"
)

// EventReaderSvc defines read operations for events.
type EventReaderSvc interface {
	// GetEventByID retrieves an event by ID.
	GetEventByID(ctx context.Context, eventID string) (*domain.Event, error)

	// ListEvents retrieves a filtered, paginated event listing.
	ListEvents(ctx context.Context, filter portsrepo.EventFilter) (*portsrepo.EventPage, error)
}

// EventWriterSvc defines the admin event mutations.
type EventWriterSvc interface {
	// CreateEvent creates a new event.
	CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*domain.Event, error)

	// UpdateEvent applies the allowed event mutations.
	UpdateEvent(ctx context.Context, eventID string, req dto.UpdateEventRequest) (*domain.Event, error)

	// DeleteEvent removes an event.
	DeleteEvent(ctx context.Context, eventID string) error

	// ToggleAllVisibility flips visibility across all events and returns the
	// number of events touched.
	ToggleAllVisibility(ctx context.Context) (int64, error)
}

// EventSvcFacade combines all event-related service interfaces.
type EventSvcFacade interface {
	EventReaderSvc
	EventWriterSvc
}
