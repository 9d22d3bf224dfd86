package dto

import (
	"time"

	"github.com/festra/event_registration_app/internal/core/domain"
)

// CreateEventRequest is the admin event-creation payload.
type CreateEventRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Participation string `json:"participation" binding:"required,oneof=SOLO TEAM HYBRID"`
	Category      string `json:"category" binding:"required,oneof=TECHNICAL GENERAL CULTURAL SPORTS ESPORTS MISCELLANEOUS"`
	Limit         int    `json:"limit" binding:"required,min=1"`
	IsVisible     *bool  `json:"isVisible"`
}

// UpdateEventRequest defines the data allowed for updating an event.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateEventRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Participation *string `json:"participation" binding:"omitempty,oneof=SOLO TEAM HYBRID"`
	Category      *string `json:"category" binding:"omitempty,oneof=TECHNICAL GENERAL CULTURAL SPORTS ESPORTS MISCELLANEOUS"`
	Limit         *int    `json:"limit" binding:"omitempty,min=1"`
	IsVisible     *bool   `json:"isVisible"`
}

// EventResponse is the external representation of an event.
type EventResponse struct {
	EventID       string    `json:"eventID"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Participation string    `json:"participation"`
	Category      string    `json:"category"`
	Limit         int       `json:"limit"`
	Registered    int       `json:"registered"`
	IsVisible     bool      `json:"isVisible"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToEventResponse converts a domain Event to its external representation.
func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		EventID:       e.EventID,
		Title:         e.Title,
		Description:   e.Description,
		Participation: string(e.Participation),
		Category:      string(e.Category),
		Limit:         e.Limit,
		Registered:    e.Registered,
		IsVisible:     e.IsVisible,
		CreatedAt:     e.CreatedAt,
	}
}

// ListEventsQuery defines query parameters for event listings.
type ListEventsQuery struct {
	Keyword       string `form:"keyword"`
	Participation string `form:"participation" binding:"omitempty,oneof=SOLO TEAM HYBRID"`
	Category      string `form:"category" binding:"omitempty,oneof=TECHNICAL GENERAL CULTURAL SPORTS ESPORTS MISCELLANEOUS"`
	Page          int    `form:"page,default=1" binding:"omitempty,min=1"`
}

// ListEventsResponse wraps one page of an event listing.
type ListEventsResponse struct {
	Events              []EventResponse `json:"events"`
	Count               int64           `json:"count"`
	FilteredEventsCount int64           `json:"filteredEventsCount"`
	ResultPerPage       int             `json:"resultPerPage"`
	CurrentPage         int             `json:"currentPage"`
}

// ToListEventsResponse converts one page of domain events.
func ToListEventsResponse(events []domain.Event, count, filtered int64, perPage, page int) ListEventsResponse {
	eventResponses := make([]EventResponse, len(events))
	for i := range events {
		eventResponses[i] = ToEventResponse(&events[i])
	}
	return ListEventsResponse{
		Events:              eventResponses,
		Count:               count,
		FilteredEventsCount: filtered,
		ResultPerPage:       perPage,
		CurrentPage:         page,
	}
}
