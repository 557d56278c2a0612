package domain

// ValidationResult is the outcome of validating one candidate.
// IsValid is always exactly len(Errors) == 0; build it with NewValidationResult.
type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

// NewValidationResult wraps a field -> message map.
func NewValidationResult(errs map[string]string) ValidationResult {
	if errs == nil {
		errs = map[string]string{}
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
