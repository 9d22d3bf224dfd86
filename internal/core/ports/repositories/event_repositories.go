package repositories

import (
	"context"

	"github.com/festra/event_registration_app/internal/core/domain"
)

// EventFilter narrows event listings. Keyword matches the title. Zero values
// mean "no filter". Page is 1-based.
type EventFilter struct {
	Keyword       string
	Participation domain.Participation
	Category      domain.Category
	VisibleOnly   bool
	Page          int
	PerPage       int
}

// EventPage is one page of a filtered event listing, with the collection-wide
// count and the count matching the filter.
type EventPage struct {
	Events        []domain.Event
	TotalCount    int64
	FilteredCount int64
}

// EventReader defines read operations for event data.
type EventReader interface {
	// FindEventByID retrieves a specific event by its ID.
	FindEventByID(ctx context.Context, eventID string) (*domain.Event, error)

	// FindEvents retrieves a filtered, paginated event listing.
	FindEvents(ctx context.Context, filter EventFilter) (*EventPage, error)
}

// EventWriter defines write operations for event data.
type EventWriter interface {
	// SaveEvent persists a new event and returns it with its assigned ID.
	SaveEvent(ctx context.Context, event domain.Event) (*domain.Event, error)

	// UpdateEvent updates the mutable fields of an event.
	UpdateEvent(ctx context.Context, event domain.Event) error

	// DeleteEvent removes the event document.
	DeleteEvent(ctx context.Context, eventID string) error

	// ToggleAllVisibility flips the visibility flag on every event in a single
	// collection-wide update and returns the number of modified events.
	ToggleAllVisibility(ctx context.Context) (int64, error)
}

// EventCapacityManager guards the registered counter against the limit.
type EventCapacityManager interface {
	// ReserveSlot atomically increments the registered count if it is below
	// the limit. Returns ErrCapacityExceeded when the event is full.
	ReserveSlot(ctx context.Context, eventID string) error

	// ReleaseSlot decrements the registered count (registration removed or
	// append failed after a reserve).
	ReleaseSlot(ctx context.Context, eventID string) error
}

// EventRepositoryFacade combines all event-related repository interfaces.
type EventRepositoryFacade interface {
	EventReader
	EventWriter
	EventCapacityManager
}
