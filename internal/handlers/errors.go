package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finsync/internal/apperrors"
	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	"github.com/SscSPs/finsync/internal/core/services"
	"github.com/SscSPs/finsync/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

var authErrorStatus = map[apperrors.AuthErrorCode]int{
	apperrors.AuthInvalidCredential:  http.StatusUnauthorized,
	apperrors.AuthUserNotFound:       http.StatusUnauthorized,
	apperrors.AuthEmailAlreadyInUse:  http.StatusConflict,
	apperrors.AuthWeakPassword:       http.StatusBadRequest,
	apperrors.AuthExpiredActionCode:  http.StatusBadRequest,
	apperrors.AuthNetworkRequestFail: http.StatusServiceUnavailable,
	apperrors.AuthUnknown:            http.StatusInternalServerError,
}

// respondError maps a service error onto a status and a localized message.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	t := middleware.GetTranslator(c)

	var authErr *apperrors.AuthError
	if errors.As(err, &authErr) {
		code := apperrors.AuthCodeOf(err)
		status := authErrorStatus[code]
		if status >= http.StatusInternalServerError {
			logger.Error("Identity provider failure", slog.String("code", string(code)), slog.String("error", err.Error()))
		}
		c.JSON(status, ErrorResponse{Error: services.TranslateAuthError(t, err), Code: string(code)})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: t.Message(i18n.MsgInvalidRequest)})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: t.Message(i18n.MsgNotFound)})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: t.Message(i18n.MsgForbidden)})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrNoPrincipal):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: t.Message(i18n.MsgUnauthorized)})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: t.Message(i18n.MsgInternal)})
	}
}

// respondBindError reports a malformed body. Struct-tag failures are translated per field.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	t := middleware.GetTranslator(c)
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	resp := ErrorResponse{Error: t.Message(i18n.MsgInvalidRequest)}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			resp.Fields[fe.Field()] = fe.Translate(t.Universal())
		}
	}
	c.JSON(http.StatusBadRequest, resp)
}

// respondInvalid reports a form rejected by the validation engine.
func respondInvalid(c *gin.Context, result domain.ValidationResult) {
	t := middleware.GetTranslator(c)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: t.Message(i18n.MsgInvalidRequest), Fields: result.Errors})
}

// requireUserID reads the authenticated uid, answering 401 when it is missing.
func requireUserID(c *gin.Context) (string, bool) {
	uid, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: middleware.GetTranslator(c).Message(i18n.MsgUnauthorized)})
		return "", false
	}
	return uid, true
}
