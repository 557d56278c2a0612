package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/core/validation"
	"github.com/SscSPs/finsync/internal/dto"
	"github.com/SscSPs/finsync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxValidatePayload bounds the body of a validate request.
const maxValidatePayload = 64 << 10

type validationHandler struct {
	validationService portssvc.ValidationSvcFacade
}

// registerValidationRoutes registers the validation routes. limit throttles per client IP
// since clients call it while the user types.
func registerValidationRoutes(rg *gin.RouterGroup, validationService portssvc.ValidationSvcFacade, limit gin.HandlerFunc) {
	h := &validationHandler{validationService: validationService}
	rg.POST("/validate/:entity", limit, h.validateEntity)
}

// validateEntity godoc
// @Summary Validate a financial record
// @Description Validates a candidate transaction, budget, debt, goal, bill or bankAccount and returns a localized message per failing field.
// @Tags validation
// @Accept json
// @Produce json
// @Param entity path string true "Entity kind" Enums(transaction, budget, debt, goal, bill, bankAccount)
// @Param lang query string false "Message locale" Enums(en, vi)
// @Param candidate body object true "Candidate record"
// @Success 200 {object} dto.ValidationResponse
// @Failure 400 {object} ErrorResponse "Malformed body"
// @Failure 404 {object} ErrorResponse "Unknown entity kind"
// @Failure 429 {object} ErrorResponse
// @Router /validate/{entity} [post]
func (h *validationHandler) validateEntity(c *gin.Context) {
	t := middleware.GetTranslator(c)
	kind := domain.EntityKind(c.Param("entity"))

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxValidatePayload))
	if err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.validationService.ValidateEntity(c.Request.Context(), kind, payload)
	if err != nil {
		if errors.Is(err, validation.ErrUnknownKind) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: t.Message(i18n.MsgNotFound)})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: t.Message(i18n.MsgInvalidRequest)})
		return
	}
	c.JSON(http.StatusOK, dto.ToValidationResponse(result))
}
