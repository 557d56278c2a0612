package validation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/finsync/internal/core/domain"
)

// ErrUnknownKind is returned by ValidateKind for kinds outside domain.EntityKinds.
var ErrUnknownKind = errors.New("unknown entity kind")

// ValidateKind decodes payload as the entity named by kind and validates it.
// The error is only for undecodable payloads or unknown kinds, never for invalid values.
func (v *Validator) ValidateKind(kind domain.EntityKind, payload []byte) (domain.ValidationResult, error) {
	switch kind {
	case domain.KindTransaction:
		var tx domain.Transaction
		if err := json.Unmarshal(payload, &tx); err != nil {
			return domain.ValidationResult{}, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		return v.ValidateTransaction(tx), nil
	case domain.KindBudget:
		var b domain.Budget
		if err := json.Unmarshal(payload, &b); err != nil {
			return domain.ValidationResult{}, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		return v.ValidateBudget(b), nil
	case domain.KindDebt:
		var d domain.Debt
		if err := json.Unmarshal(payload, &d); err != nil {
			return domain.ValidationResult{}, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		return v.ValidateDebt(d), nil
	case domain.KindGoal:
		var g domain.Goal
		if err := json.Unmarshal(payload, &g); err != nil {
			return domain.ValidationResult{}, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		return v.ValidateGoal(g), nil
	case domain.KindBill:
		var b domain.Bill
		if err := json.Unmarshal(payload, &b); err != nil {
			return domain.ValidationResult{}, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		return v.ValidateBill(b), nil
	case domain.KindBankAccount:
		var a domain.BankAccount
		if err := json.Unmarshal(payload, &a); err != nil {
			return domain.ValidationResult{}, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		return v.ValidateBankAccount(a), nil
	default:
		return domain.ValidationResult{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
