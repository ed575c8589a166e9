// Package i18n resolves translation keys to localized display text with a
// deterministic fallback chain: current language, then the baseline catalog,
// then the raw key itself.
package i18n

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"legalease/internal/kvstore"
)

// Direction is the text direction derived from the current language.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Resolver holds the current language selection and performs catalog lookup
// with parameter interpolation. There are no transient states: the resolver
// is always "resolved to language X"; catalogs are static in-memory tables.
type Resolver struct {
	mu       sync.RWMutex
	language string

	store kvstore.Store
	log   *slog.Logger
}

// New builds a resolver, restoring a previously persisted selection from the
// durable store. An absent or invalid stored value falls back to defaultLang,
// and an invalid defaultLang falls back to the baseline.
func New(ctx context.Context, store kvstore.Store, log *slog.Logger, defaultLang string) *Resolver {
	r := &Resolver{
		language: BaselineLanguage,
		store:    store,
		log:      log,
	}
	if IsSupported(defaultLang) {
		r.language = defaultLang
	}
	if saved, ok, err := store.Get(ctx, kvstore.KeyLanguage); err != nil {
		log.Warn("failed to load saved language", "err", err)
	} else if ok && IsSupported(saved) {
		r.language = saved
	}
	return r
}

// IsSupported reports whether code is in the closed supported-language set.
func IsSupported(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Language returns the current language code.
func (r *Resolver) Language() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.language
}

// Direction returns the text direction for the current language.
func (r *Resolver) Direction() Direction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rtlLanguages[r.language] {
		return DirectionRTL
	}
	return DirectionLTR
}

// SetLanguage switches the current language and persists the selection.
// An unsupported code is a silent no-op; the prior language stays active.
func (r *Resolver) SetLanguage(ctx context.Context, code string) {
	if !IsSupported(code) {
		r.log.Debug("ignoring unsupported language", "code", code)
		return
	}
	r.mu.Lock()
	r.language = code
	r.mu.Unlock()
	if err := r.store.Set(ctx, kvstore.KeyLanguage, code); err != nil {
		r.log.Warn("failed to persist language selection", "code", code, "err", err)
	}
}

// Resolve looks up key in the current language's catalog, falling back to
// the baseline catalog and finally to the key itself. Every {name}
// placeholder with a matching entry in params is substituted; placeholders
// without a matching param are left as-is.
func (r *Resolver) Resolve(key string, params map[string]string) string {
	r.mu.RLock()
	lang := r.language
	r.mu.RUnlock()

	template, ok := catalogs[lang][key]
	if !ok {
		template, ok = catalogs[BaselineLanguage][key]
	}
	if !ok {
		template = key
	}
	for name, value := range params {
		template = strings.ReplaceAll(template, "{"+name+"}", value)
	}
	return template
}
