package handlers

import (
	"net/http"

	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/dto"
	"github.com/festra/event_registration_app/internal/middleware"
	"github.com/festra/event_registration_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const oauthStateCookieName = "oauth_state"

// GoogleOAuthHandler handles Google sign-in, both the direct ID-token flow
// used by the frontend and the redirect code flow.
type GoogleOAuthHandler struct {
	googleAuthService portssvc.GoogleAuthSvcFacade
	tokenService      portssvc.TokenSvcFacade
	authHandler       *AuthHandler
	cfg               *config.Config
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(gs portssvc.GoogleAuthSvcFacade, ts portssvc.TokenSvcFacade, ah *AuthHandler, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleAuthService: gs,
		tokenService:      ts,
		authHandler:       ah,
		cfg:               cfg,
	}
}

// registerGoogleAuthRoutes sets up the Google sign-in routes under /users.
func registerGoogleAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	ah := NewAuthHandler(services.User, services.Token, cfg)
	h := NewGoogleOAuthHandler(services.GoogleAuth, services.Token, ah, cfg)

	users := rg.Group("/users")
	{
		users.POST("/google", h.SignInWithIDToken)
		users.GET("/google/login", h.RedirectToGoogle)
		users.GET("/google/callback", h.HandleGoogleCallback)
	}
}

// signIn converts a resolved user into an app session.
func (h *GoogleOAuthHandler) signIn(c *gin.Context, idToken string) {
	user, err := h.googleAuthService.SignInWithGoogle(c.Request.Context(), idToken)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
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

// SignInWithIDToken godoc
// @Summary Google sign-in with ID token
// @Description Validates a Google ID token obtained by the frontend and signs
// @Description the user in, creating or linking the account as needed.
// @Tags auth
// @Accept json
// @Produce json
// @Param google body dto.GoogleSignInRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid ID token"
// @Failure 403 {object} ErrorResponse "Account blocked"
// @Router /users/google [post]
func (h *GoogleOAuthHandler) SignInWithIDToken(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.signIn(c, req.IDToken)
}

// RedirectToGoogle godoc
// @Summary Start Google redirect flow
// @Description Redirects the browser to the Google consent screen with a CSRF
// @Description state cookie.
// @Tags auth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /users/google/login [get]
func (h *GoogleOAuthHandler) RedirectToGoogle(c *gin.Context) {
	state, err := h.googleAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate OAuth state")
		return
	}

	c.SetCookie(oauthStateCookieName, state, 300, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// HandleGoogleCallback godoc
// @Summary Google redirect callback
// @Description Verifies the CSRF state, exchanges the authorization code for
// @Description an ID token and signs the user in.
// @Tags auth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/google/callback [get]
func (h *GoogleOAuthHandler) HandleGoogleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stateCookie, err := c.Cookie(oauthStateCookieName)
	if err != nil || stateCookie == "" || stateCookie != c.Query("state") {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code required"})
		return
	}

	idToken, err := h.googleAuthService.ExchangeCodeForIDToken(c.Request.Context(), code)
	if err != nil {
		respondError(c, err, "Failed to exchange authorization code")
		return
	}

	h.signIn(c, idToken)
}
