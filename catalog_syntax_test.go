package reldate

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// TestLocaleSyntax ensures all embedded TOML catalogs are valid and complete.
func TestLocaleSyntax(t *testing.T) {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		t.Fatalf("reading locales dir: %v", err)
	}

	required := []string{"now", "today", "yesterday", "tomorrow", "years_ago", "this_year", "last_year"}
	unitNames := []string{"seconds", "minutes", "hours", "days", "months", "years"}

	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".toml") {
			continue
		}

		t.Run(name, func(t *testing.T) {
			data, err := fs.ReadFile(localeFS, "locales/"+name)
			if err != nil {
				t.Fatalf("reading %s: %v", name, err)
			}

			var v map[string]any
			if _, err := toml.Decode(string(data), &v); err != nil {
				t.Fatalf("%s: invalid TOML syntax: %v", name, err)
			}

			relative, ok := v["relative"].(map[string]any)
			if !ok {
				t.Fatalf("%s: missing [relative] table", name)
			}

			for _, key := range required {
				if text, _ := relative[key].(string); text == "" {
					t.Errorf("%s: missing relative.%s", name, key)
				}
			}

			for _, unit := range unitNames {
				table, ok := relative[unit].(map[string]any)
				if !ok {
					t.Errorf("%s: missing relative.%s", name, unit)
					continue
				}
				for _, direction := range []string{"past", "future"} {
					forms, ok := table[direction].(map[string]any)
					if !ok {
						t.Errorf("%s: missing relative.%s.%s", name, unit, direction)
						continue
					}
					other, _ := forms["other"].(string)
					if !strings.Contains(other, "{{.Count}}") {
						t.Errorf("%s: relative.%s.%s.other lacks {{.Count}}: %q", name, unit, direction, other)
					}
				}
			}
		})
	}
}
