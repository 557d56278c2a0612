package middleware

import (
	"context"
	"sync"

	"github.com/SscSPs/finsync/internal/core/i18n"
	"github.com/gin-gonic/gin"
)

// LocaleQueryParam overrides Accept-Language, e.g. ?lang=vi.
const LocaleQueryParam = "lang"

var (
	fallbackOnce    sync.Once
	fallbackCatalog *i18n.Catalog
)

// LocaleMiddleware resolves the request locale from ?lang= or Accept-Language and stores
// the matching translator in the request context.
func LocaleMiddleware(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var t i18n.Translator
		if lang := c.Query(LocaleQueryParam); lang != "" {
			t = catalog.Translator(lang)
		} else {
			t = catalog.FromAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		c.Header("Content-Language", t.Locale())
		c.Set(string(translatorCtxKey), t)
		c.Request = c.Request.WithContext(WithTranslator(c.Request.Context(), t))
		c.Next()
	}
}

// WithTranslator returns a copy of ctx carrying t.
func WithTranslator(ctx context.Context, t i18n.Translator) context.Context {
	return context.WithValue(ctx, translatorCtxKey, t)
}

// GetTranslator returns the request translator, falling back to English when
// LocaleMiddleware did not run.
func GetTranslator(c *gin.Context) i18n.Translator {
	if v, exists := c.Get(string(translatorCtxKey)); exists {
		if t, ok := v.(i18n.Translator); ok {
			return t
		}
	}
	return GetTranslatorFromCtx(c.Request.Context())
}

// GetTranslatorFromCtx is GetTranslator for a standard context.
func GetTranslatorFromCtx(ctx context.Context) i18n.Translator {
	if t, ok := ctx.Value(translatorCtxKey).(i18n.Translator); ok {
		return t
	}
	fallbackOnce.Do(func() {
		fallbackCatalog = i18n.MustNewCatalog(i18n.LocaleEN)
	})
	return fallbackCatalog.Translator()
}
