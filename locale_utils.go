package reldate

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

func languageParentTag(code string) string {
	if code == "" {
		return ""
	}

	tag, err := language.Parse(code)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(code, "-"); idx > 0 {
		return code[:idx]
	}

	return ""
}

// languageParentChain returns the parents of code, closest first.
// zh-Hant-TW yields zh-Hant, zh; en-GB yields en-001, en.
func languageParentChain(code string) []string {
	if code == "" {
		return nil
	}

	var chain []string
	seen := map[string]struct{}{code: {}}

	if tag, err := language.Parse(code); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			value := parent.String()
			if value == "" || value == "und" {
				break
			}
			if _, exists := seen[value]; exists {
				break
			}
			seen[value] = struct{}{}
			chain = append(chain, value)
		}
	}

	for current := languageParentTag(code); current != ""; current = languageParentTag(current) {
		if _, exists := seen[current]; exists {
			continue
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	return chain
}

// normalizeLanguage trims the code and converts POSIX underscores to BCP 47 hyphens.
// Wikipedia codes are lowercase, so the result is lowercased as well.
func normalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	if idx := strings.IndexAny(code, ".@"); idx >= 0 {
		code = code[:idx]
	}
	return strings.ToLower(strings.ReplaceAll(code, "_", "-"))
}

func normalizeLanguages(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized := normalizeLanguage(code)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}

func sanitizeFallbacks(code string, fallbacks []string) []string {
	if len(fallbacks) == 0 {
		return nil
	}

	seen := map[string]struct{}{
		normalizeLanguage(code): {},
	}

	result := make([]string, 0, len(fallbacks))
	for _, candidate := range fallbacks {
		normalized := normalizeLanguage(candidate)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// sameBaseLanguage reports whether a and b share a base language, so a
// regional tag rendered by its base catalog is not a fallback.
func sameBaseLanguage(a, b string) bool {
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		baseA, _, _ := strings.Cut(normalizeLanguage(a), "-")
		baseB, _, _ := strings.Cut(normalizeLanguage(b), "-")
		return baseA != "" && baseA == baseB
	}
	baseA, _ := ta.Base()
	baseB, _ := tb.Base()
	return baseA == baseB
}
