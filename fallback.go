package reldate

import "sync"

// FallbackResolver resolves fallback language chains
type FallbackResolver interface {
	Resolve(language string) []string
}

// StaticFallbackResolver holds explicit fallback chains keyed by language
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the chain for language. Duplicates and self references are dropped.
func (s *StaticFallbackResolver) Set(language string, fallbacks ...string) {
	language = normalizeLanguage(language)
	if s == nil || language == "" {
		return
	}

	chain := sanitizeFallbacks(language, fallbacks)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chains == nil {
		s.chains = make(map[string][]string)
	}
	if len(chain) == 0 {
		delete(s.chains, language)
		return
	}
	s.chains[language] = chain
}

func (s *StaticFallbackResolver) Resolve(language string) []string {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	chain, ok := s.chains[normalizeLanguage(language)]
	if !ok {
		return nil
	}
	out := make([]string, len(chain))
	copy(out, chain)
	return out
}
