package handlers

import (
	"net/http"

	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/dto"
	"github.com/festra/event_registration_app/internal/middleware"
	"github.com/festra/event_registration_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the user-facing auth routes. Credential endpoints
// share one per-IP limiter.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, credentialLimiter *limiter.Limiter) {
	h := NewAuthHandler(services.User, services.Token, cfg)
	limited := middleware.RateLimit(credentialLimiter)
	authed := middleware.AuthMiddleware(cfg, services.User)

	users := rg.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", limited, h.Login)
		users.GET("/logout", authed, h.Logout)
		users.POST("/refresh", h.Refresh)

		users.POST("/verify", authed, h.VerifyEmail)
		users.POST("/verify/resend", authed, limited, h.ResendOneTimePassword)

		users.POST("/password/forgot", limited, h.ForgotPassword)
		users.PUT("/password/reset/:token", h.ResetPassword)
	}
}

// setAuthCookies writes the access and refresh tokens as HttpOnly cookies.
// Secure is tied to production so local HTTP development still works.
func (h *AuthHandler) setAuthCookies(c *gin.Context, pair *portssvc.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, pair.AccessToken,
		int(h.cfg.AccessTokenExpiry.Seconds()), "/", "", h.cfg.IsProduction, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, pair.RefreshToken,
		int(h.cfg.RefreshTokenExpiry.Seconds()), "/", "", h.cfg.IsProduction, true)
}

// clearAuthCookies expires both auth cookies.
func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(h.cfg.AccessTokenCookieName, "", -1, "/", "", h.cfg.IsProduction, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, "/", "", h.cfg.IsProduction, true)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account and mails a verification OTP.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	newUser, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and sets the access/refresh token cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account blocked"
// @Failure 500 {object} ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
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

	pair, err := h.tokenService.IssueTokenPair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}

	h.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout godoc
// @Summary User logout
// @Description Revokes the stored refresh token and clears the auth cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to logout")
		return
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// refreshRequest is the fallback body for clients not using cookies.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh godoc
// @Summary Refresh token pair
// @Description Rotates the refresh token and issues a new access token. The
// @Description presented token must match the single stored session.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(h.cfg.RefreshTokenCookieName)
	if refreshToken == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token required"})
		return
	}

	user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearAuthCookies(c)
		respondError(c, err, "Failed to validate refresh token")
		return
	}

	pair, err := h.tokenService.IssueTokenPair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}

	h.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// VerifyEmail godoc
// @Summary Verify email with OTP
// @Description Checks the submitted one-time password and marks the account verified.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "One-time password"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "OTP mismatch"
// @Failure 410 {object} ErrorResponse "OTP expired"
// @Security BearerAuth
// @Router /users/verify [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.VerifyEmail(c.Request.Context(), userID, req.OneTimePassword)
	if err != nil {
		respondError(c, err, "Failed to verify email")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ResendOneTimePassword godoc
// @Summary Resend verification OTP
// @Description Regenerates the OTP, invalidating the previous one, and re-mails it.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/verify/resend [post]
func (h *AuthHandler) ResendOneTimePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.userService.ResendOneTimePassword(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to resend one-time password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// ForgotPassword godoc
// @Summary Start password reset
// @Description Issues a reset token and mails the reset link.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /users/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to start password reset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent"})
}

// ResetPassword godoc
// @Summary Complete password reset
// @Description Replaces the password using the mailed reset token. The active
// @Description session is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param reset body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown token"
// @Failure 410 {object} ErrorResponse "Token expired"
// @Router /users/password/reset/{token} [put]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Reset token required"})
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.ResetPassword(c.Request.Context(), token, req.Password)
	if err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
