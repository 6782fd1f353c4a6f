// Package i18n localizes error messages and validation errors for the caller's locale.
package i18n

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	zhtranslations "github.com/go-playground/validator/v10/translations/zh"
	"golang.org/x/text/language"
)

// ContextKey is the gin context key holding the request's ut.Translator.
const ContextKey = "translator"

// Translator resolves a ut.Translator from an Accept-Language header.
type Translator struct {
	uni      *ut.UniversalTranslator
	fallback ut.Translator
}

// New builds a Translator with English and Chinese catalogs.
// defaultLang is used when the caller's header matches no supported locale.
func New(defaultLang string) (*Translator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New())

	for _, loc := range []locales.Translator{enLocale, zh.New()} {
		trans, _ := uni.GetTranslator(loc.Locale())
		for key, text := range catalog[loc.Locale()] {
			if err := trans.Add(key, text, true); err != nil {
				return nil, fmt.Errorf("add translation %s/%s: %w", loc.Locale(), key, err)
			}
		}
	}

	fallback, ok := uni.GetTranslator(defaultLang)
	if !ok {
		fallback, _ = uni.GetTranslator(enLocale.Locale())
	}
	return &Translator{uni: uni, fallback: fallback}, nil
}

// RegisterValidator installs the default validation messages for every supported locale
// and makes field names follow their json tags.
func (t *Translator) RegisterValidator(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enTrans, _ := t.uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(v, enTrans); err != nil {
		return fmt.Errorf("register en validator translations: %w", err)
	}
	zhTrans, _ := t.uni.GetTranslator("zh")
	if err := zhtranslations.RegisterDefaultTranslations(v, zhTrans); err != nil {
		return fmt.Errorf("register zh validator translations: %w", err)
	}
	return nil
}

// For picks the best translator for an Accept-Language header value.
func (t *Translator) For(acceptLanguage string) ut.Translator {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return t.fallback
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		if trans, ok := t.uni.GetTranslator(base.String()); ok {
			return trans
		}
	}
	return t.fallback
}

// Middleware stores the request's translator in the gin context.
func (t *Translator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKey, t.For(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// FromContext returns the translator set by Middleware, or nil.
func FromContext(c *gin.Context) ut.Translator {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil
	}
	trans, _ := v.(ut.Translator)
	return trans
}

// Message translates key, returning fallback when trans is nil or the key is unknown.
func Message(trans ut.Translator, key, fallback string) string {
	if trans == nil || key == "" {
		return fallback
	}
	s, err := trans.T(key)
	if err != nil || s == "" {
		return fallback
	}
	return s
}
