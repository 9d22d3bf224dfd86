package handlers

import (
	"net/http"

	"github.com/festra/event_registration_app/internal/core/domain"
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/dto"
	"github.com/festra/event_registration_app/internal/middleware"
	"github.com/festra/event_registration_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// EventHandler handles event listing, admin CRUD and event registration.
type EventHandler struct {
	eventService        portssvc.EventSvcFacade
	registrationService portssvc.RegistrationSvcFacade
	cfg                 *config.Config
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(es portssvc.EventSvcFacade, rs portssvc.RegistrationSvcFacade, cfg *config.Config) *EventHandler {
	return &EventHandler{
		eventService:        es,
		registrationService: rs,
		cfg:                 cfg,
	}
}

// registerEventRoutes sets up the event routes. Listing and detail are public;
// registering requires a verified account; mutations require elevated roles.
func registerEventRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewEventHandler(services.Event, services.Registration, cfg)
	authed := middleware.AuthMiddleware(cfg, services.User)
	verified := middleware.RequireVerified()

	events := rg.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)

		events.POST("", authed, verified, middleware.RequireRoles(domain.RoleAdmin), h.CreateEvent)
		events.PUT("/:id", authed, verified, middleware.RequireRoles(domain.RoleAdmin), h.UpdateEvent)
		events.DELETE("/:id", authed, verified, middleware.RequireRoles(domain.RoleAdmin), h.DeleteEvent)

		events.POST("/:id/register", authed, verified, h.RegisterForEvent)
		events.PUT("/:id/verify/:userId", authed, verified,
			middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator), h.MarkPhysicalVerification)
	}
}

// ListEvents godoc
// @Summary List visible events
// @Description Returns the visible events, filterable by keyword,
// @Description participation and category, paginated.
// @Tags events
// @Produce json
// @Param keyword query string false "Title keyword"
// @Param participation query string false "SOLO | TEAM | HYBRID"
// @Param category query string false "Event category"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.ListEventsResponse
// @Failure 400 {object} ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.eventService.ListEvents(c.Request.Context(), portsrepo.EventFilter{
		Keyword:       query.Keyword,
		Participation: domain.Participation(query.Participation),
		Category:      domain.Category(query.Category),
		VisibleOnly:   true,
		Page:          query.Page,
		PerPage:       h.cfg.ResultPerPage,
	})
	if err != nil {
		respondError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEventsResponse(page.Events, page.TotalCount, page.FilteredCount, h.cfg.ResultPerPage, query.Page))
}

// GetEvent godoc
// @Summary Get one event
// @Description Returns a single visible event by id.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEventByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get event")
		return
	}
	// Hidden events do not exist for the public surface.
	if !event.IsVisible {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// CreateEvent godoc
// @Summary Create event
// @Description Creates a new event. Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.CreateEventRequest true "Event"
// @Success 201 {object} dto.EventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

// UpdateEvent godoc
// @Summary Update event
// @Description Applies the allowed event mutations. The limit cannot drop
// @Description below the current registration count. Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param event body dto.UpdateEventRequest true "Event changes"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// DeleteEvent godoc
// @Summary Delete event
// @Description Removes an event. Admin only.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventService.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// RegisterForEvent godoc
// @Summary Register for event
// @Description Records the payment, reserves a capacity slot and appends the
// @Description registration to the user. Fails when the event is full or the
// @Description user is already registered.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param registration body dto.RegisterForEventRequest true "Payment details"
// @Success 201 {object} dto.RegistrationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already registered or event full"
// @Security BearerAuth
// @Router /events/{id}/register [post]
func (h *EventHandler) RegisterForEvent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.RegisterForEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reg, err := h.registrationService.RegisterForEvent(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to register for event")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegistrationResponse(*reg))
}

// MarkPhysicalVerification godoc
// @Summary Mark physical verification
// @Description Marks a user's registration as physically verified by the
// @Description requesting staff member. Re-verification is a no-op.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Param userId path string true "User ID"
// @Success 200 {object} dto.RegistrationResponse
// @Failure 404 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/{id}/verify/{userId} [put]
func (h *EventHandler) MarkPhysicalVerification(c *gin.Context) {
	verifierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	reg, err := h.registrationService.MarkPhysicalVerification(c.Request.Context(), c.Param("userId"), c.Param("id"), verifierID)
	if err != nil {
		respondError(c, err, "Failed to mark physical verification")
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistrationResponse(*reg))
}
