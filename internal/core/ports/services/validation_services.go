package services

import (
	"context"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/validation"
)

// ValidationSvcFacade hands out validators bound to the request locale.
type ValidationSvcFacade interface {
	// Validator returns a validator for the locale carried by ctx.
	Validator(ctx context.Context) *validation.Validator

	// ValidateEntity decodes payload as kind and validates it.
	ValidateEntity(ctx context.Context, kind domain.EntityKind, payload []byte) (domain.ValidationResult, error)
}
