package examplegen

import "sync"

// RootLocale terminates every fallback chain.
const RootLocale = "root"

// FallbackResolver resolves the chain of locales searched after locale itself.
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver holds explicit parent chains and derives the rest
// from language tag truncation. Every chain ends with RootLocale.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = (*StaticFallbackResolver)(nil)

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set registers an explicit chain for locale.
func (r *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	if r == nil {
		return
	}
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}
	chain := make([]string, 0, len(fallbacks))
	for _, fb := range fallbacks {
		fb = normalizeLocale(fb)
		if fb == "" || fb == locale {
			continue
		}
		chain = append(chain, fb)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.chains == nil {
		r.chains = make(map[string][]string)
	}
	r.chains[locale] = chain
}

// Resolve returns the fallback chain for locale, without locale itself.
func (r *StaticFallbackResolver) Resolve(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" || locale == RootLocale {
		return nil
	}

	var chain []string
	if r != nil {
		r.mu.RLock()
		explicit, ok := r.chains[locale]
		r.mu.RUnlock()
		if ok {
			chain = append(chain, explicit...)
		}
	}
	if chain == nil {
		chain = localeParentChain(locale)
	}
	if len(chain) == 0 || chain[len(chain)-1] != RootLocale {
		chain = append(chain, RootLocale)
	}
	return chain
}
