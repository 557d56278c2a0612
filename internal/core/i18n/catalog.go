// Package i18n hosts the localized message catalog shared by the validation engine,
// auth error translation and request binding errors.
package i18n

import (
	"fmt"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/vi"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	vi_translations "github.com/go-playground/validator/v10/translations/vi"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

const (
	LocaleEN = "en"
	LocaleVI = "vi"
)

// Catalog owns one translator per supported locale.
type Catalog struct {
	uni           *ut.UniversalTranslator
	defaultLocale string
}

// NewCatalog loads every message table. Unknown default locales fall back to English.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	if defaultLocale != LocaleVI {
		defaultLocale = LocaleEN
	}

	supported := []locales.Translator{en.New(), vi.New()}
	var fallback locales.Translator = en.New()
	if defaultLocale == LocaleVI {
		fallback = vi.New()
	}
	uni := ut.New(fallback, supported...)

	for locale, table := range messageTables {
		trans, found := uni.GetTranslator(locale)
		if !found {
			return nil, fmt.Errorf("translator for locale %q not registered", locale)
		}
		for key, text := range table {
			if err := trans.Add(key, text, true); err != nil {
				return nil, fmt.Errorf("failed to add %s message %q: %w", locale, key, err)
			}
		}
	}

	return &Catalog{uni: uni, defaultLocale: defaultLocale}, nil
}

// MustNewCatalog is NewCatalog for package-level fixtures and tests.
func MustNewCatalog(defaultLocale string) *Catalog {
	c, err := NewCatalog(defaultLocale)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultLocale is the locale used when a request names none we support.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Translator returns the first supported locale among the candidates, or the default.
func (c *Catalog) Translator(candidates ...string) Translator {
	for _, candidate := range candidates {
		base := baseLanguage(candidate)
		if base == "" {
			continue
		}
		if trans, found := c.uni.GetTranslator(base); found {
			return Translator{trans: trans}
		}
	}
	trans, _ := c.uni.GetTranslator(c.defaultLocale)
	return Translator{trans: trans}
}

// FromAcceptLanguage picks a translator for an Accept-Language header value.
func (c *Catalog) FromAcceptLanguage(header string) Translator {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return c.Translator()
	}
	candidates := make([]string, 0, len(tags))
	for _, tag := range tags {
		candidates = append(candidates, tag.String())
	}
	return c.Translator(candidates...)
}

// RegisterValidator installs translated messages for struct-tag validation failures.
func (c *Catalog) RegisterValidator(v *validator.Validate) error {
	enTrans, _ := c.uni.GetTranslator(LocaleEN)
	if err := en_translations.RegisterDefaultTranslations(v, enTrans); err != nil {
		return fmt.Errorf("failed to register en validator translations: %w", err)
	}
	viTrans, _ := c.uni.GetTranslator(LocaleVI)
	if err := vi_translations.RegisterDefaultTranslations(v, viTrans); err != nil {
		return fmt.Errorf("failed to register vi validator translations: %w", err)
	}
	return nil
}

func baseLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(tag)
	}
	base, _ := parsed.Base()
	return base.String()
}

// Translator renders catalog messages for one locale.
type Translator struct {
	trans ut.Translator
}

// Locale returns the translator's locale name.
func (t Translator) Locale() string {
	return t.trans.Locale()
}

// Universal exposes the underlying translator, e.g. for validator.ValidationErrors.Translate.
func (t Translator) Universal() ut.Translator {
	return t.trans
}

// Message renders key with positional params. A missing key renders as the key itself.
func (t Translator) Message(key string, params ...string) string {
	msg, err := t.trans.T(key, params...)
	if err != nil {
		return key
	}
	return msg
}

// Field renders the display label of a form field.
func (t Translator) Field(name string) string {
	key := FieldKeyPrefix + name
	msg, err := t.trans.T(key)
	if err != nil {
		return name
	}
	return msg
}

// Number formats d with the locale's grouping and decimal separators.
func (t Translator) Number(d decimal.Decimal) string {
	f, _ := d.Float64()
	places := -d.Exponent()
	if places < 0 {
		places = 0
	}
	return t.trans.FmtNumber(f, uint64(places))
}
