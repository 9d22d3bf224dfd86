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
	"github.com/ulule/limiter/v3"
)

// AdminHandler handles the staff-facing management surface.
type AdminHandler struct {
	userService         portssvc.UserSvcFacade
	eventService        portssvc.EventSvcFacade
	registrationService portssvc.RegistrationSvcFacade
	tokenService        portssvc.TokenSvcFacade
	authHandler         *AuthHandler
	cfg                 *config.Config
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		userService:         services.User,
		eventService:        services.Event,
		registrationService: services.Registration,
		tokenService:        services.Token,
		authHandler:         NewAuthHandler(services.User, services.Token, cfg),
		cfg:                 cfg,
	}
}

// registerAdminRoutes sets up the /admins surface. Everything except login
// runs behind auth, verification and a staff role gate; the destructive user
// mutations are admin-only.
func registerAdminRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, credentialLimiter *limiter.Limiter) {
	h := NewAdminHandler(services, cfg)
	authed := middleware.AuthMiddleware(cfg, services.User)
	verified := middleware.RequireVerified()
	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	admins := rg.Group("/admins")
	admins.POST("/login", middleware.RateLimit(credentialLimiter), h.Login)

	users := admins.Group("/users", authed, verified, staff)
	{
		users.GET("/all", h.ListUsers)
		users.GET("/byId/:id", h.GetUser)
		users.DELETE("/byId/:id", adminOnly, h.DeleteUser)
		users.PUT("/block/:id", h.ToggleBlock)
		users.PUT("/role/:id", adminOnly, h.UpdateRole)
		users.GET("/event/:id", h.ListRegistrants)
	}

	events := admins.Group("/events", authed, verified, staff)
	{
		events.GET("/all", h.ListAllEvents)
		events.GET("/regi", h.ListRegistrations)
		events.GET("/payment/:id", h.GetPayment)
		events.PUT("/isVisible/all", adminOnly, h.ToggleAllVisibility)
		events.DELETE("/delete/:user/:id", adminOnly, h.DeleteRegistration)
	}
}

// Login godoc
// @Summary Staff login
// @Description Authenticates a staff account. Non-staff roles are rejected
// @Description even with valid credentials.
// @Tags admins
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admins/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to authenticate user")
		return
	}
	if user.Role != domain.RoleAdmin && user.Role != domain.RoleModerator {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
		return
	}

	pair, err := h.tokenService.IssueTokenPair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}

	h.authHandler.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// ListUsers godoc
// @Summary List users
// @Description Returns all users, filterable by keyword and role, paginated.
// @Tags admins
// @Produce json
// @Param keyword query string false "Name or email keyword"
// @Param role query string false "USER | ADMIN | MODERATOR"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admins/users/all [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.userService.ListUsers(c.Request.Context(), portsrepo.UserFilter{
		Keyword: query.Keyword,
		Role:    domain.Role(query.Role),
		Page:    query.Page,
		PerPage: h.cfg.ResultPerPage,
	})
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(page.Users, page.TotalCount, page.FilteredCount, h.cfg.ResultPerPage, query.Page))
}

// GetUser godoc
// @Summary Get one user
// @Tags admins
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admins/users/byId/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser godoc
// @Summary Delete user
// @Description Removes a user account. Admin only.
// @Tags admins
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admins/users/byId/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ToggleBlock godoc
// @Summary Toggle user block
// @Description Flips the blocked flag. A blocked user's tokens stop working on
// @Description the next request.
// @Tags admins
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admins/users/block/{id} [put]
func (h *AdminHandler) ToggleBlock(c *gin.Context) {
	user, err := h.userService.ToggleBlock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to toggle block")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateRole godoc
// @Summary Update user role
// @Description Sets the user's role. Admin only.
// @Tags admins
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param role body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admins/users/role/{id} [put]
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		respondError(c, err, "Failed to update role")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListRegistrants godoc
// @Summary List event registrants
// @Description Returns the users registered for one event, paginated.
// @Tags admins
// @Produce json
// @Param id path string true "Event ID"
// @Param keyword query string false "Name or email keyword"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admins/users/event/{id} [get]
func (h *AdminHandler) ListRegistrants(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.userService.ListRegistrants(c.Request.Context(), c.Param("id"), portsrepo.UserFilter{
		Keyword: query.Keyword,
		Role:    domain.Role(query.Role),
		Page:    query.Page,
		PerPage: h.cfg.ResultPerPage,
	})
	if err != nil {
		respondError(c, err, "Failed to list registrants")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(page.Users, page.TotalCount, page.FilteredCount, h.cfg.ResultPerPage, query.Page))
}

// ListAllEvents godoc
// @Summary List all events
// @Description Returns every event including hidden ones, filterable and
// @Description paginated.
// @Tags admins
// @Produce json
// @Param keyword query string false "Title keyword"
// @Param participation query string false "SOLO | TEAM | HYBRID"
// @Param category query string false "Event category"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.ListEventsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admins/events/all [get]
func (h *AdminHandler) ListAllEvents(c *gin.Context) {
	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.eventService.ListEvents(c.Request.Context(), portsrepo.EventFilter{
		Keyword:       query.Keyword,
		Participation: domain.Participation(query.Participation),
		Category:      domain.Category(query.Category),
		Page:          query.Page,
		PerPage:       h.cfg.ResultPerPage,
	})
	if err != nil {
		respondError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEventsResponse(page.Events, page.TotalCount, page.FilteredCount, h.cfg.ResultPerPage, query.Page))
}

// ListRegistrations godoc
// @Summary List all registrations
// @Description Returns the flattened user x event registration rows across
// @Description all users, paginated.
// @Tags admins
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.ListRegistrationsResponse
// @Security BearerAuth
// @Router /admins/events/regi [get]
func (h *AdminHandler) ListRegistrations(c *gin.Context) {
	var query struct {
		Page int `form:"page,default=1" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.registrationService.ListRegistrations(c.Request.Context(), query.Page, h.cfg.ResultPerPage)
	if err != nil {
		respondError(c, err, "Failed to list registrations")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPayment godoc
// @Summary Get a payment record
// @Description Returns the payment referenced by a registration's paymentId.
// @Tags admins
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admins/events/payment/{id} [get]
func (h *AdminHandler) GetPayment(c *gin.Context) {
	payment, err := h.registrationService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// ToggleAllVisibility godoc
// @Summary Toggle visibility of all events
// @Description Flips isVisible on every event in one collection-wide update.
// @Tags admins
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admins/events/isVisible/all [put]
func (h *AdminHandler) ToggleAllVisibility(c *gin.Context) {
	modified, err := h.eventService.ToggleAllVisibility(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to toggle event visibility")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Visibility toggled", "modified": modified})
}

// DeleteRegistration godoc
// @Summary Delete a registration
// @Description Removes one user's registration for one event and releases the
// @Description capacity slot. Admin only.
// @Tags admins
// @Produce json
// @Param user path string true "User ID"
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admins/events/delete/{user}/{id} [delete]
func (h *AdminHandler) DeleteRegistration(c *gin.Context) {
	if err := h.registrationService.DeleteRegistration(c.Request.Context(), c.Param("user"), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete registration")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration deleted"})
}
