package main

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

func englishFields() map[string]fieldPatterns {
	fields := make(map[string]fieldPatterns)
	for _, unit := range units {
		name := unit.field
		fields[name] = fieldPatterns{
			Relative: map[string]string{},
			Past: map[string]string{
				"one":   "{0} " + name + " ago",
				"other": "{0} " + name + "s ago",
			},
			Future: map[string]string{
				"one":   "in {0} " + name,
				"other": "in {0} " + name + "s",
			},
		}
	}
	fields["second"].Relative["0"] = "now"
	fields["day"].Relative["-1"] = "yesterday"
	fields["day"].Relative["0"] = "today"
	fields["day"].Relative["1"] = "tomorrow"
	fields["year"].Relative["-1"] = "last year"
	fields["year"].Relative["0"] = "this year"
	return fields
}

func TestBuildCatalog(t *testing.T) {
	catalog, err := buildCatalog(language.English, englishFields())
	if err != nil {
		t.Fatalf("buildCatalog: %v", err)
	}

	relative := catalog["relative"].(map[string]any)

	expected := map[string]string{
		"now":       "now",
		"today":     "Today",
		"yesterday": "Yesterday",
		"tomorrow":  "Tomorrow",
		"this_year": "This year",
		"last_year": "Last year",
		"years_ago": "years ago",
	}
	for key, want := range expected {
		if got := relative[key]; got != want {
			t.Fatalf("relative[%q] = %v, want %q", key, got, want)
		}
	}

	days := relative["days"].(map[string]any)
	past := days["past"].(map[string]string)
	if past["other"] != "{{.Count}} days ago" {
		t.Fatalf("days.past.other = %q", past["other"])
	}
}

func TestBuildCatalogMissingUnit(t *testing.T) {
	fields := englishFields()
	delete(fields, "month")

	if _, err := buildCatalog(language.English, fields); err == nil {
		t.Fatal("expected error for missing month patterns")
	}
}

func TestRenderCatalogRoundTrip(t *testing.T) {
	catalog, err := buildCatalog(language.English, englishFields())
	if err != nil {
		t.Fatalf("buildCatalog: %v", err)
	}

	source, err := renderCatalog(catalog)
	if err != nil {
		t.Fatalf("renderCatalog: %v", err)
	}

	if !strings.HasPrefix(string(source), "# Code generated by reldate-catalog") {
		t.Fatalf("missing generated header:\n%s", source)
	}

	var decoded map[string]any
	if _, err := toml.Decode(string(source), &decoded); err != nil {
		t.Fatalf("generated TOML invalid: %v", err)
	}
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pattern", convertPattern("hace {0} días"), "hace {{.Count}} días"},
		{"fragment", yearsAgoFragment("{0} years ago"), "years ago"},
		{"fragment prefix", yearsAgoFragment("hace {0} años"), "hace años"},
		{"fragment without count", yearsAgoFragment("last year"), ""},
		{"capitalize", capitalize(language.English, "yesterday"), "Yesterday"},
		{"capitalize cyrillic", capitalize(language.Russian, "вчера"), "Вчера"},
		{"capitalize empty", capitalize(language.English, ""), ""},
		{"locale", cldrLocale("pt_br"), "pt_BR"},
		{"locale plain", cldrLocale("de"), "de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
