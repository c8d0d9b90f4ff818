package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	cldr "golang.org/x/text/unicode/cldr"
)

type generatorConfig struct {
	out       string
	cldrPath  string
	languages []string
}

// fieldPatterns holds the relative data of one CLDR date field such as "day"
type fieldPatterns struct {
	Relative map[string]string
	Past     map[string]string
	Future   map[string]string
}

// units maps CLDR field types to catalog unit names
var units = []struct {
	field string
	name  string
}{
	{"second", "seconds"},
	{"minute", "minutes"},
	{"hour", "hours"},
	{"day", "days"},
	{"month", "months"},
	{"year", "years"},
}

var pluralCategories = map[string]struct{}{
	"zero":  {},
	"one":   {},
	"two":   {},
	"few":   {},
	"many":  {},
	"other": {},
}

type languageFlag struct {
	items []string
}

func (f *languageFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *languageFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "reldate-catalog: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig
	var languages languageFlag

	flag.StringVar(&cfg.out, "out", "locales", "directory the TOML catalogs are written to")
	flag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects subdirectories like main/ and supplemental/)")
	flag.Var(&languages, "lang", "language to generate. Repeat flag or separate with commas to add more.")

	flag.Parse()

	if len(languages.items) == 0 {
		return generatorConfig{}, errors.New("at least one -lang value is required")
	}
	cfg.languages = languages.items

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}

	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return err
	}

	for _, lang := range cfg.languages {
		locale := cldrLocale(lang)
		ldml, err := data.LDML(locale)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", locale, err)
		}

		tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
		if err != nil {
			return fmt.Errorf("parse %s: %w", locale, err)
		}

		catalog, err := buildCatalog(tag, extractFields(ldml))
		if err != nil {
			return fmt.Errorf("build catalog for %s: %w", lang, err)
		}

		source, err := renderCatalog(catalog)
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.out, tag.String()+".toml")
		if err := os.WriteFile(path, source, 0o644); err != nil {
			return err
		}
	}

	return nil
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main", "supplemental")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

// cldrLocale converts a language code such as "pt-br" to the CLDR file name "pt_BR"
func cldrLocale(lang string) string {
	lang = strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if tag, err := language.Parse(lang); err == nil {
		lang = tag.String()
	}
	return strings.ReplaceAll(lang, "-", "_")
}

func extractFields(ldml *cldr.LDML) map[string]fieldPatterns {
	result := make(map[string]fieldPatterns)
	if ldml == nil || ldml.Dates == nil || ldml.Dates.Fields == nil {
		return result
	}

	for _, field := range ldml.Dates.Fields.Field {
		if field == nil || field.Type == "" {
			continue
		}

		patterns := fieldPatterns{
			Relative: make(map[string]string),
			Past:     make(map[string]string),
			Future:   make(map[string]string),
		}

		for _, relative := range field.Relative {
			if relative == nil || relative.Type == "" {
				continue
			}
			patterns.Relative[relative.Type] = relative.Data()
		}

		for _, relativeTime := range field.RelativeTime {
			if relativeTime == nil {
				continue
			}
			target := patterns.Past
			if relativeTime.Type == "future" {
				target = patterns.Future
			}
			for _, pattern := range relativeTime.RelativeTimePattern {
				if pattern == nil {
					continue
				}
				if _, ok := pluralCategories[pattern.Count]; !ok {
					continue
				}
				target[pattern.Count] = pattern.Data()
			}
		}

		result[field.Type] = patterns
	}

	return result
}

// buildCatalog turns CLDR field data into go-i18n messages under the
// "relative" table.
func buildCatalog(tag language.Tag, fields map[string]fieldPatterns) (map[string]any, error) {
	relative := make(map[string]any)

	for _, unit := range units {
		field, ok := fields[unit.field]
		if !ok || len(field.Past) == 0 || len(field.Future) == 0 {
			return nil, fmt.Errorf("missing relative time patterns for %s", unit.field)
		}
		relative[unit.name] = map[string]any{
			"past":   convertPatterns(field.Past),
			"future": convertPatterns(field.Future),
		}
	}

	if now := fields["second"].Relative["0"]; now != "" {
		relative["now"] = now
	}

	day := fields["day"].Relative
	for key, value := range map[string]string{"-1": "yesterday", "0": "today", "1": "tomorrow"} {
		if text := day[key]; text != "" {
			relative[value] = capitalize(tag, text)
		}
	}

	year := fields["year"].Relative
	for key, value := range map[string]string{"-1": "last_year", "0": "this_year"} {
		if text := year[key]; text != "" {
			relative[value] = capitalize(tag, text)
		}
	}

	if fragment := yearsAgoFragment(fields["year"].Past["other"]); fragment != "" {
		relative["years_ago"] = fragment
	}

	return map[string]any{"relative": relative}, nil
}

func convertPatterns(patterns map[string]string) map[string]string {
	out := make(map[string]string, len(patterns))
	for count, pattern := range patterns {
		out[count] = convertPattern(pattern)
	}
	return out
}

// convertPattern rewrites the CLDR placeholder into go template syntax
func convertPattern(pattern string) string {
	return strings.ReplaceAll(pattern, "{0}", "{{.Count}}")
}

// yearsAgoFragment strips the count from a past pattern: "{0} years ago" gives "years ago"
func yearsAgoFragment(pattern string) string {
	if !strings.Contains(pattern, "{0}") {
		return ""
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(pattern, "{0}", "")), " ")
}

// capitalize upper-cases the first letter only, CLDR stores "yesterday" in lower case
func capitalize(tag language.Tag, text string) string {
	first, size := utf8.DecodeRuneInString(text)
	if first == utf8.RuneError {
		return text
	}
	return cases.Upper(tag).String(string(first)) + text[size:]
}

func renderCatalog(catalog map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Code generated by reldate-catalog. DO NOT EDIT.\n\n")
	if err := toml.NewEncoder(&buf).Encode(catalog); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}
