package services

import (
	"context"
	"fmt"
	"time"

	"github.com/festra/event_registration_app/internal/apperrors"
	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/dto"
	"github.com/festra/event_registration_app/internal/platform/config"
)

type eventService struct {
	eventRepo portsrepo.EventRepositoryFacade
	cfg       *config.Config
}

// NewEventService creates the event service.
func NewEventService(eventRepo portsrepo.EventRepositoryFacade, cfg *config.Config) portssvc.EventSvcFacade {
	return &eventService{
		eventRepo: eventRepo,
		cfg:       cfg,
	}
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.eventRepo.FindEventByID(ctx, eventID)
}

func (s *eventService) ListEvents(ctx context.Context, filter portsrepo.EventFilter) (*portsrepo.EventPage, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = s.cfg.ResultPerPage
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Participation != "" && !filter.Participation.IsValid() {
		return nil, fmt.Errorf("unknown participation %q: %w", filter.Participation, apperrors.ErrValidation)
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, fmt.Errorf("unknown category %q: %w", filter.Category, apperrors.ErrValidation)
	}
	return s.eventRepo.FindEvents(ctx, filter)
}

func (s *eventService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*domain.Event, error) {
	participation := domain.Participation(req.Participation)
	category := domain.Category(req.Category)
	if !participation.IsValid() {
		return nil, fmt.Errorf("unknown participation %q: %w", req.Participation, apperrors.ErrValidation)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("unknown category %q: %w", req.Category, apperrors.ErrValidation)
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	now := time.Now()
	event := domain.Event{
		Title:         req.Title,
		Description:   req.Description,
		Participation: participation,
		Category:      category,
		Limit:         req.Limit,
		Registered:    0,
		IsVisible:     visible,
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	created, err := s.eventRepo.SaveEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, req dto.UpdateEventRequest) (*domain.Event, error) {
	event, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Participation != nil {
		p := domain.Participation(*req.Participation)
		if !p.IsValid() {
			return nil, fmt.Errorf("unknown participation %q: %w", *req.Participation, apperrors.ErrValidation)
		}
		event.Participation = p
	}
	if req.Category != nil {
		c := domain.Category(*req.Category)
		if !c.IsValid() {
			return nil, fmt.Errorf("unknown category %q: %w", *req.Category, apperrors.ErrValidation)
		}
		event.Category = c
	}
	if req.Limit != nil {
		if *req.Limit < event.Registered {
			return nil, fmt.Errorf("limit %d below current registrations %d: %w", *req.Limit, event.Registered, apperrors.ErrValidation)
		}
		event.Limit = *req.Limit
	}
	if req.IsVisible != nil {
		event.IsVisible = *req.IsVisible
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.UpdateEvent(ctx, *event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	if _, err := s.eventRepo.FindEventByID(ctx, eventID); err != nil {
		return err
	}
	return s.eventRepo.DeleteEvent(ctx, eventID)
}

func (s *eventService) ToggleAllVisibility(ctx context.Context) (int64, error) {
	return s.eventRepo.ToggleAllVisibility(ctx)
}
