// Package validation implements the record-level validators for every financial entity
// and the identity forms. Validators are pure: no I/O, no retained state, and they
// never fail with a Go error. Every problem is reported as a localized field message.
package validation

import (
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
)

// Engine builds locale-bound validators. It is safe for concurrent use.
type Engine struct {
	catalog *i18n.Catalog
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now for the date-relative rules.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine backed by catalog.
func NewEngine(catalog *i18n.Catalog, opts ...Option) *Engine {
	e := &Engine{catalog: catalog, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// For returns a validator rendering messages in the first supported locale.
func (e *Engine) For(locales ...string) *Validator {
	return e.WithTranslator(e.catalog.Translator(locales...))
}

// WithTranslator returns a validator bound to an already-resolved translator.
func (e *Engine) WithTranslator(t i18n.Translator) *Validator {
	return &Validator{t: t, now: e.now}
}

// Validator validates candidates and renders messages in one locale.
type Validator struct {
	t   i18n.Translator
	now func() time.Time
}

// Locale returns the locale messages are rendered in.
func (v *Validator) Locale() string {
	return v.t.Locale()
}

func (v *Validator) collect() *collector {
	return &collector{t: v.t, errs: map[string]string{}}
}

// collector accumulates at most one message per field, first violation wins.
type collector struct {
	t    i18n.Translator
	errs map[string]string
}

func (c *collector) has(field string) bool {
	_, ok := c.errs[field]
	return ok
}

// add records key for field. The field label is always passed as {0}.
func (c *collector) add(field, key string, params ...string) {
	if c.has(field) {
		return
	}
	args := append([]string{c.t.Field(field)}, params...)
	c.errs[field] = c.t.Message(key, args...)
}

// addPlain records key for field without the label param.
func (c *collector) addPlain(field, key string) {
	if c.has(field) {
		return
	}
	c.errs[field] = c.t.Message(key)
}

func (c *collector) result() domain.ValidationResult {
	return domain.NewValidationResult(c.errs)
}

// first returns the message recorded for field, or "".
func (c *collector) first(field string) string {
	return c.errs[field]
}
