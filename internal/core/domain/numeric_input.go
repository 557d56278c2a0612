package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// NumericInput is a number as typed by a user. It keeps the raw text so that
// half-filled forms ("", "12.", "abc") reach the validation engine untouched.
// JSON numbers, JSON strings and null all decode into it.
type NumericInput string

// NumberOf formats a decimal as NumericInput.
func NumberOf(d decimal.Decimal) NumericInput {
	return NumericInput(d.String())
}

// Int is a convenience for tests and fixtures.
func Int(v int64) NumericInput {
	return NumberOf(decimal.NewFromInt(v))
}

// IsEmpty reports whether nothing was entered.
func (n NumericInput) IsEmpty() bool {
	return strings.TrimSpace(string(n)) == ""
}

// Decimal parses the input. ok is false for empty or non-numeric text.
func (n NumericInput) Decimal() (d decimal.Decimal, ok bool) {
	if n.IsEmpty() {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(string(n)))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// UnmarshalJSON accepts 12, "12", "" and null.
func (n *NumericInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericInput(s)
		return nil
	}
	*n = NumericInput(data)
	return nil
}

// MarshalJSON emits a JSON number when the text parses, otherwise the raw string.
func (n NumericInput) MarshalJSON() ([]byte, error) {
	if d, ok := n.Decimal(); ok {
		return []byte(d.String()), nil
	}
	return json.Marshal(string(n))
}
