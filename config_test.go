package reldate

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv(EnvLanguage, "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "de_DE.UTF-8")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.DefaultLanguage != "de-de" {
		t.Fatalf("DefaultLanguage = %q", cfg.DefaultLanguage)
	}
	if cfg.Location != time.Local {
		t.Fatalf("Location = %v, want Local", cfg.Location)
	}
	if cfg.Clock == nil {
		t.Fatal("expected default clock")
	}
	if cfg.Store == nil {
		t.Fatal("expected default store")
	}
	if cfg.Resolver == nil {
		t.Fatal("expected fallback resolver")
	}
	if cfg.LanguageCatalog() == nil {
		t.Fatal("expected embedded language catalog")
	}

	f, err := cfg.BuildFormatter()
	if err != nil {
		t.Fatalf("BuildFormatter: %v", err)
	}
	if got := f.YearsAgoPhrase(""); got != "Jahre her" {
		t.Fatalf("YearsAgoPhrase() = %q", got)
	}
}

func TestNewConfigLanguages(t *testing.T) {
	cfg, err := NewConfig(
		WithLanguages("ru", "en", "EN"),
		WithDefaultLanguage("en"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	expected := []string{"en", "ru"}
	if len(cfg.Languages) != len(expected) {
		t.Fatalf("Languages = %v, want %v", cfg.Languages, expected)
	}
	for i, lang := range expected {
		if cfg.Languages[i] != lang {
			t.Fatalf("Languages[%d] = %q, want %q", i, cfg.Languages[i], lang)
		}
	}
}

func TestNewConfigUnknownLanguages(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"default", []Option{WithDefaultLanguage("tlh")}},
		{"languages", []Option{WithLanguages("en", "tlh")}},
		{"inactive default", []Option{WithLanguageOverride(filepath.Join("testdata", "languages_override.yaml")), WithDefaultLanguage("ja")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConfig(tt.opts...); !errors.Is(err, ErrUnknownLanguage) {
				t.Fatalf("expected ErrUnknownLanguage, got %v", err)
			}
		})
	}
}

func TestConfigWithFallbackOption(t *testing.T) {
	cfg, err := NewConfig(
		WithDefaultLanguage("en"),
		WithFallback("es", "en", "fr", "en"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	chain := cfg.Resolver.Resolve("es")

	expected := []string{"en", "fr"}
	if len(chain) != len(expected) {
		t.Fatalf("fallback chain length = %d want %d", len(chain), len(expected))
	}

	for i, lang := range expected {
		if chain[i] != lang {
			t.Fatalf("fallback[%d] = %q want %q", i, chain[i], lang)
		}
	}
}

func TestConfigFallbackChangesOutput(t *testing.T) {
	f, _ := newTestFormatter(t, WithFallback("lb", "fr"))

	from := utc(2024, 1, 1, 0, 0, 0)
	to := utc(2024, 1, 3, 0, 0, 0)

	// catalog fallbacks come before resolver chains
	if got := f.In("lb").RelativeToDate(from, to); got != "vor 2 Tagen" {
		t.Fatalf("lb = %q", got)
	}

	f, _ = newTestFormatter(t, WithFallback("tlh", "ja"))
	if got := f.In("tlh").RelativeToDate(from, to); got != "2 日前" {
		t.Fatalf("tlh = %q", got)
	}
}

func TestConfigFallbackResolverOption(t *testing.T) {
	resolver := NewStaticFallbackResolver()
	resolver.Set("wa", "es")

	cfg, err := NewConfig(
		WithDefaultLanguage("en"),
		WithFallbackResolver(resolver),
		WithFallback("wa", "de"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.Resolver != resolver {
		t.Fatal("expected configured resolver")
	}
	if chain := resolver.Resolve("wa"); len(chain) != 1 || chain[0] != "de" {
		t.Fatalf("WithFallback should update the static resolver, got %v", chain)
	}
}

func TestConfigCatalogFiles(t *testing.T) {
	f, _ := newTestFormatter(t,
		WithCatalogFiles(filepath.Join("testdata", "catalogs", "pt.toml")),
		WithLanguageOverride(filepath.Join("testdata", "languages_override.yaml")),
	)

	if got := f.In("pt-br").RelativeFromMidnightUTC(utc(2024, 3, 9, 0, 0, 0)); got != "Ontem" {
		t.Fatalf("pt-br yesterday = %q", got)
	}

	if _, err := NewConfig(WithCatalogFiles()); !errors.Is(err, ErrNoCatalogPaths) {
		t.Fatalf("expected ErrNoCatalogPaths, got %v", err)
	}

	_, err := NewConfig(WithCatalogFiles(filepath.Join("testdata", "catalogs", "notes.txt")))
	if !errors.Is(err, ErrUnsupportedCatalog) {
		t.Fatalf("expected ErrUnsupportedCatalog, got %v", err)
	}
}

func TestConfigLanguageCatalogErrors(t *testing.T) {
	if _, err := NewConfig(WithLanguageCatalog(filepath.Join("testdata", "languages.toml"))); !errors.Is(err, ErrUnsupportedCatalog) {
		t.Fatalf("expected ErrUnsupportedCatalog, got %v", err)
	}

	if _, err := NewConfig(WithLanguageOverride(filepath.Join("testdata", "languages_bad_fallback.yaml"))); err == nil {
		t.Fatal("expected error for undefined fallback")
	}

	if _, err := NewConfig(WithLanguageCatalog(filepath.Join("testdata", "missing.yaml"))); err == nil {
		t.Fatal("expected error for missing language catalog")
	}
}

func TestConfigOptionsApply(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	clock := clockwork.NewFakeClockAt(referenceNow)

	f, err := New(
		WithDefaultLanguage("ja"),
		WithLocation(tokyo),
		WithClock(clock),
		nil,
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if f.Language() != "ja" {
		t.Fatalf("Language() = %q", f.Language())
	}
	if f.Location() != tokyo {
		t.Fatalf("Location() = %v", f.Location())
	}
	if got := f.RelativeToNow(referenceNow.Add(-3 * time.Hour)); got != "3 時間前" {
		t.Fatalf("RelativeToNow() = %q", got)
	}
}

func TestConfigOptionError(t *testing.T) {
	boom := errors.New("boom")
	failing := func(*Config) error { return boom }

	if _, err := NewConfig(failing); !errors.Is(err, boom) {
		t.Fatalf("expected option error, got %v", err)
	}
}

func TestConfigBuildFormatterNil(t *testing.T) {
	var cfg *Config
	if f, err := cfg.BuildFormatter(); err == nil || f != nil {
		t.Fatalf("expected error, got (%v, %v)", f, err)
	}
}
