package reldate

import (
	"fmt"
	"sort"
)

// LanguageDefinition describes one wiki language in catalog files
type LanguageDefinition struct {
	DisplayName string   `yaml:"display_name" json:"display_name"`
	Tag         string   `yaml:"tag,omitempty" json:"tag,omitempty"`
	Active      *bool    `yaml:"active,omitempty" json:"active,omitempty"`
	Fallbacks   []string `yaml:"fallbacks,omitempty" json:"fallbacks,omitempty"`
}

// LanguageCatalog is an immutable snapshot of wiki language metadata.
type LanguageCatalog struct {
	defaultLanguage string
	languages       map[string]languageEntry
	allCodes        []string
	activeCodes     []string
}

type languageEntry struct {
	displayName string
	tag         string
	active      bool
	fallbacks   []string
}

func newLanguageCatalog(defaultLanguage string, definitions map[string]LanguageDefinition) (*LanguageCatalog, error) {
	if len(definitions) == 0 {
		return nil, nil
	}

	normalizedDefault := normalizeLanguage(defaultLanguage)
	languages := make(map[string]languageEntry, len(definitions))

	for originalCode, definition := range definitions {
		code := normalizeLanguage(originalCode)
		if code == "" {
			return nil, fmt.Errorf("language catalog: empty language code")
		}
		if _, exists := languages[code]; exists {
			return nil, fmt.Errorf("language catalog: duplicate language %q", code)
		}

		entry := languageEntry{
			displayName: definition.DisplayName,
			tag:         normalizeLanguage(definition.Tag),
			active:      true,
		}
		if entry.tag == "" {
			entry.tag = code
		}

		if definition.Active != nil {
			entry.active = *definition.Active
		}

		if len(definition.Fallbacks) > 0 {
			entry.fallbacks = sanitizeFallbacks(code, definition.Fallbacks)
		}

		languages[code] = entry
	}

	if normalizedDefault != "" {
		if _, exists := languages[normalizedDefault]; !exists {
			return nil, fmt.Errorf("language catalog: default language %q not defined", normalizedDefault)
		}
	}

	for code, entry := range languages {
		for _, fallback := range entry.fallbacks {
			if _, exists := languages[fallback]; !exists {
				return nil, fmt.Errorf("language catalog: %q references undefined fallback %q", code, fallback)
			}
		}
	}

	allCodes := make([]string, 0, len(languages))
	activeCodes := make([]string, 0, len(languages))
	for code, entry := range languages {
		allCodes = append(allCodes, code)
		if entry.active {
			activeCodes = append(activeCodes, code)
		}
	}
	sort.Strings(allCodes)
	sort.Strings(activeCodes)

	return &LanguageCatalog{
		defaultLanguage: normalizedDefault,
		languages:       languages,
		allCodes:        allCodes,
		activeCodes:     activeCodes,
	}, nil
}

// DefaultLanguage returns the configured default language.
func (c *LanguageCatalog) DefaultLanguage() string {
	if c == nil {
		return ""
	}
	return c.defaultLanguage
}

// ActiveCodes returns all languages marked active, sorted alphabetically.
func (c *LanguageCatalog) ActiveCodes() []string {
	if c == nil || len(c.activeCodes) == 0 {
		return nil
	}
	out := make([]string, len(c.activeCodes))
	copy(out, c.activeCodes)
	return out
}

// AllCodes returns every language in the catalog, sorted alphabetically.
func (c *LanguageCatalog) AllCodes() []string {
	if c == nil || len(c.allCodes) == 0 {
		return nil
	}
	out := make([]string, len(c.allCodes))
	copy(out, c.allCodes)
	return out
}

// DisplayName returns the human-friendly name for the requested language.
func (c *LanguageCatalog) DisplayName(code string) string {
	if c == nil {
		return ""
	}
	entry, ok := c.languages[normalizeLanguage(code)]
	if !ok {
		return ""
	}
	return entry.displayName
}

// Tag returns the BCP 47 tag used for phrase lookup. Codes missing from the
// catalog are returned normalized, so plain BCP 47 input passes through.
func (c *LanguageCatalog) Tag(code string) string {
	normalized := normalizeLanguage(code)
	if c == nil {
		return normalized
	}
	entry, ok := c.languages[normalized]
	if !ok {
		return normalized
	}
	return entry.tag
}

// Fallbacks returns the configured fallback chain for the language.
func (c *LanguageCatalog) Fallbacks(code string) []string {
	if c == nil {
		return nil
	}
	entry, ok := c.languages[normalizeLanguage(code)]
	if !ok || len(entry.fallbacks) == 0 {
		return nil
	}
	out := make([]string, len(entry.fallbacks))
	copy(out, entry.fallbacks)
	return out
}

// IsActive reports whether the language is marked active.
func (c *LanguageCatalog) IsActive(code string) bool {
	if c == nil {
		return false
	}
	entry, ok := c.languages[normalizeLanguage(code)]
	if !ok {
		return false
	}
	return entry.active
}

// Has reports whether the language exists in the catalog.
func (c *LanguageCatalog) Has(code string) bool {
	if c == nil {
		return false
	}
	_, ok := c.languages[normalizeLanguage(code)]
	return ok
}
