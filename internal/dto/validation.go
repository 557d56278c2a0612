package dto

import "github.com/SscSPs/finsync/internal/core/domain"

// ValidationResponse is the outcome of validating a candidate entity or form.
type ValidationResponse struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

func ToValidationResponse(r domain.ValidationResult) ValidationResponse {
	errs := r.Errors
	if errs == nil {
		errs = map[string]string{}
	}
	return ValidationResponse{IsValid: r.IsValid, Errors: errs}
}
