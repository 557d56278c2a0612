package handlers

import (
	"net/http"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/core/validation"
	"github.com/SscSPs/finsync/internal/dto"
	"github.com/SscSPs/finsync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService       portssvc.AuthSvcFacade
	validationService portssvc.ValidationSvcFacade
}

func newAuthHandler(auth portssvc.AuthSvcFacade, validation portssvc.ValidationSvcFacade) *authHandler {
	return &authHandler{authService: auth, validationService: validation}
}

// registerAuthRoutes sets up the public authentication routes. limit throttles the
// credential endpoints per client IP.
func registerAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, limit gin.HandlerFunc) {
	h := newAuthHandler(services.Auth, services.Validation)

	auth := rg.Group("/auth")
	{
		auth.POST("/signup", limit, h.signUp)
		auth.POST("/login", limit, h.login)
		auth.POST("/reset-password", limit, h.resetPassword)
		auth.POST("/reset-password/confirm", limit, h.confirmPasswordReset)
	}
}

// registerSessionRoutes sets up the authentication routes that need a signed-in caller.
func registerSessionRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := &authHandler{authService: authService}
	rg.POST("/auth/logout", h.logout)
}

// signUp godoc
// @Summary Register a new user
// @Description Creates an email/password account, signs it in and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Registration form"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid form, per-field messages in fields"
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Failure 429 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) signUp(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	form := req.ToDomain()
	if result := h.validationService.Validator(c.Request.Context()).ValidateSignup(form); !result.IsValid {
		respondInvalid(c, result)
		return
	}

	session, err := h.authService.SignUp(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAuthResponse(session))
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	form := req.ToDomain()
	if result := h.validationService.Validator(c.Request.Context()).ValidateLogin(form); !result.IsValid {
		respondInvalid(c, result)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAuthResponse(session))
}

// resetPassword godoc
// @Summary Request a password reset
// @Description Sends a reset link when an account exists. The response does not reveal whether it does.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Account email"
// @Success 202 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/reset-password [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	form := req.ToDomain()
	if result := h.validationService.Validator(c.Request.Context()).ValidateResetPassword(form); !result.IsValid {
		respondInvalid(c, result)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), form); err != nil {
		respondError(c, err)
		return
	}
	t := middleware.GetTranslator(c)
	c.JSON(http.StatusAccepted, dto.MessageResponse{Message: t.Message(i18n.MsgResetEmailSent)})
}

// confirmPasswordReset godoc
// @Summary Complete a password reset
// @Description Sets a new password using the token from the reset link.
// @Tags auth
// @Accept json
// @Produce json
// @Param confirm body dto.ConfirmPasswordResetRequest true "Reset token and new password"
// @Success 204
// @Failure 400 {object} ErrorResponse "Invalid form or expired token"
// @Failure 429 {object} ErrorResponse
// @Router /auth/reset-password/confirm [post]
func (h *authHandler) confirmPasswordReset(c *gin.Context) {
	var req dto.ConfirmPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	v := h.validationService.Validator(c.Request.Context())
	fields := map[string]string{}
	if msg := v.ValidateStrongPassword(req.Password); msg != "" {
		fields[validation.FieldPassword] = msg
	}
	if msg := v.ValidateConfirmPassword(req.Password, req.ConfirmPassword); msg != "" {
		fields[validation.FieldConfirmPassword] = msg
	}
	if result := domain.NewValidationResult(fields); !result.IsValid {
		respondInvalid(c, result)
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// logout godoc
// @Summary Sign out
// @Description Ends the caller's server-side session. Live sync event streams are closed.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
