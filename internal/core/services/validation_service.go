package services

import (
	"context"

	"github.com/SscSPs/finsync/internal/core/domain"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/core/validation"
	"github.com/SscSPs/finsync/internal/middleware"
)

type validationService struct {
	BaseService
	engine *validation.Engine
}

// NewValidationService binds engine to the translator of each request.
func NewValidationService(engine *validation.Engine) portssvc.ValidationSvcFacade {
	return &validationService{engine: engine}
}

func (s *validationService) Validator(ctx context.Context) *validation.Validator {
	return s.engine.WithTranslator(middleware.GetTranslatorFromCtx(ctx))
}

func (s *validationService) ValidateEntity(ctx context.Context, kind domain.EntityKind, payload []byte) (domain.ValidationResult, error) {
	result, err := s.Validator(ctx).ValidateKind(kind, payload)
	if err != nil {
		s.LogDebug(ctx, "Entity payload rejected", "kind", string(kind), "error", err.Error())
		return domain.ValidationResult{}, err
	}
	return result, nil
}
