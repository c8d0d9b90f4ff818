package reldate

import (
	"reflect"
	"time"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LanguageKey names the map key or struct field holding the language.
	// Defaults to "Language".
	LanguageKey string
}

// TemplateHelpers exposes formatter helpers for go-template. The first argument
// of every helper is either a language code or the template data the language
// is extracted from.
func TemplateHelpers(f *Formatter, cfg HelperConfig) map[string]any {
	if f == nil {
		f = Default()
	}

	return map[string]any{
		"relative_date": func(data any, date time.Time) string {
			return f.In(extractLanguage(data, cfg.LanguageKey, f.Language())).RelativeToNow(date)
		},
		"relative_date_to": func(data any, date, reference time.Time) string {
			return f.In(extractLanguage(data, cfg.LanguageKey, f.Language())).RelativeToDate(date, reference)
		},
		"relative_day": func(data any, date time.Time) string {
			return f.In(extractLanguage(data, cfg.LanguageKey, f.Language())).RelativeFromMidnightUTC(date)
		},
		"years_ago_phrase": func(data any) string {
			return f.YearsAgoPhrase(extractLanguage(data, cfg.LanguageKey, f.Language()))
		},
		"years_ago": func(data any, years int) string {
			return f.FormatYearsAgo(extractLanguage(data, cfg.LanguageKey, f.Language()), years)
		},
		"current_language": func(data any) string {
			return extractLanguage(data, cfg.LanguageKey, f.Language())
		},
	}
}

// extractLanguage pulls the language from template data.
// It handles plain strings, maps and struct types such as page data.
func extractLanguage(data any, key, fallback string) string {
	if data == nil {
		return fallback
	}

	if key == "" {
		key = "Language"
	}

	if str, ok := data.(string); ok {
		if str == "" {
			return fallback
		}
		return str
	}

	switch d := data.(type) {
	case map[string]any:
		if v, ok := d[key]; ok {
			if str, ok := v.(string); ok && str != "" {
				return str
			}
		}
		return fallback
	case map[string]string:
		if v, ok := d[key]; ok && v != "" {
			return v
		}
		return fallback
	}

	value := reflect.ValueOf(data)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return fallback
		}
		value = value.Elem()
	}

	if value.Kind() == reflect.Struct {
		field := value.FieldByName(key)
		if field.IsValid() && field.Kind() == reflect.String && field.String() != "" {
			return field.String()
		}
	}

	return fallback
}
