package mapping

import (
	"github.com/festra/event_registration_app/internal/core/domain"
	"github.com/festra/event_registration_app/internal/models"
)

// ToDomainEvent converts a persisted Event document to a domain Event.
func ToDomainEvent(m models.Event) domain.Event {
	return domain.Event{
		EventID:       m.ID.Hex(),
		Title:         m.Title,
		Description:   m.Description,
		Participation: domain.Participation(m.Participation),
		Category:      domain.Category(m.Category),
		Limit:         m.Limit,
		Registered:    m.Registered,
		IsVisible:     m.IsVisible,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainEventSlice converts a slice of Event documents to domain Events.
func ToDomainEventSlice(ms []models.Event) []domain.Event {
	ds := make([]domain.Event, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEvent(m)
	}
	return ds
}
