package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finsync/internal/apperrors"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/dto"
	"github.com/SscSPs/finsync/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 10 * 60
)

// googleOAuthHandler handles Google sign-in, either from an ID token obtained client-side
// or through the authorization code flow.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	authService        portssvc.AuthSvcFacade
	secureCookies      bool
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, secureCookies bool, limit gin.HandlerFunc) {
	h := &googleOAuthHandler{
		googleOAuthService: services.GoogleOAuth,
		authService:        services.Auth,
		secureCookies:      secureCookies,
	}
	googleRoutes := rg.Group("/auth/google")
	{
		googleRoutes.POST("", limit, h.signInWithIDToken)
		googleRoutes.GET("/login", h.loginURL)
		googleRoutes.POST("/exchange-code", limit, h.exchangeCode)
	}
}

// signInWithIDToken godoc
// @Summary Sign in with a Google ID token
// @Description Verifies an ID token issued to this client, links or creates the account and returns an access token.
// @Tags oauth
// @Accept json
// @Produce json
// @Param token body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email registered with another sign-in method"
// @Router /auth/google [post]
func (h *googleOAuthHandler) signInWithIDToken(c *gin.Context) {
	var req dto.GoogleIDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.authService.SignInWithGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAuthResponse(session))
}

// loginURL godoc
// @Summary Start the Google authorization code flow
// @Description Returns the Google consent page URL and sets the anti-CSRF state cookie.
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.GoogleLoginURLResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) loginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, dto.GoogleLoginURLResponse{URL: h.googleOAuthService.GetGoogleLoginURL(ctx, state)})
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code
// @Description Completes the authorization code flow started by /auth/google/login and returns an access token.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code and state"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "State mismatch or rejected code"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || subtle.ConstantTimeCompare([]byte(expected), []byte(req.State)) != 1 {
		logger.Warn("OAuth state mismatch", slog.Bool("cookie_present", err == nil))
		respondError(c, apperrors.ErrUnauthorized)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)

	session, err := h.authService.SignInWithGoogleCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAuthResponse(session))
}
