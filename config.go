package reldate

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Config captures formatter setup
type Config struct {
	DefaultLanguage string
	Languages       []string
	Location        *time.Location
	Clock           clockwork.Clock
	Store           PhraseStore
	Resolver        FallbackResolver
	Hooks           []FormatHook

	catalogFiles      []string
	loaders           []CatalogLoader
	languageDataPath  string
	languageOverrides []string
	languageCatalog   *LanguageCatalog
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyLanguageCatalog(); err != nil {
		return nil, err
	}

	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = ResolveLanguage("")
	}

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	if cfg.Store == nil {
		loaders := make([]CatalogLoader, 0, len(cfg.loaders)+1)
		if len(cfg.catalogFiles) > 0 {
			loaders = append(loaders, NewFileLoader(cfg.catalogFiles...))
		}
		loaders = append(loaders, cfg.loaders...)

		store, err := NewBundleStore(cfg.languageCatalog.Tag(cfg.languageCatalog.DefaultLanguage()), loaders...)
		if err != nil {
			return nil, err
		}
		cfg.Store = store
	}

	return cfg, nil
}

// WithDefaultLanguage sets the language used when a call does not name one
func WithDefaultLanguage(lang string) Option {
	return func(c *Config) error {
		c.DefaultLanguage = lang
		return nil
	}
}

// WithLanguages restricts the languages a formatter honors; others degrade
// to the default language.
func WithLanguages(languages ...string) Option {
	return func(c *Config) error {
		c.Languages = append(c.Languages, languages...)
		return nil
	}
}

// WithLocation sets the zone calendar arithmetic is evaluated in
func WithLocation(loc *time.Location) Option {
	return func(c *Config) error {
		c.Location = loc
		return nil
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Config) error {
		c.Clock = clock
		return nil
	}
}

// WithCatalogFiles merges message files over the embedded phrase catalogs
func WithCatalogFiles(paths ...string) Option {
	return func(c *Config) error {
		if len(paths) == 0 {
			return ErrNoCatalogPaths
		}
		c.catalogFiles = append(c.catalogFiles, paths...)
		return nil
	}
}

func WithCatalogLoader(loader CatalogLoader) Option {
	return func(c *Config) error {
		if loader != nil {
			c.loaders = append(c.loaders, loader)
		}
		return nil
	}
}

func WithStore(store PhraseStore) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

// WithLanguageCatalog replaces the embedded language table path
func WithLanguageCatalog(path string) Option {
	return func(c *Config) error {
		c.languageDataPath = path
		c.languageCatalog = nil
		return nil
	}
}

// WithLanguageOverride merges a language table file over the configured one
func WithLanguageOverride(path string) Option {
	return func(c *Config) error {
		c.languageOverrides = append(c.languageOverrides, path)
		c.languageCatalog = nil
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

func WithFallback(lang string, fallbacks ...string) Option {
	return func(c *Config) error {
		if lang == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(lang, fallbacks...)
		return nil
	}
}

func WithFormatHooks(hooks ...FormatHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// LanguageCatalog exposes the immutable language table loaded for this config
func (cfg *Config) LanguageCatalog() *LanguageCatalog {
	if cfg == nil {
		return nil
	}
	return cfg.languageCatalog
}

func (cfg *Config) BuildFormatter() (*Formatter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("reldate: nil config")
	}

	var allowed map[string]struct{}
	if len(cfg.Languages) > 0 {
		allowed = make(map[string]struct{}, len(cfg.Languages)+1)
		for _, lang := range cfg.Languages {
			allowed[lang] = struct{}{}
		}
		allowed[normalizeLanguage(cfg.DefaultLanguage)] = struct{}{}
	}

	return &Formatter{
		store:    cfg.Store,
		catalog:  cfg.languageCatalog,
		resolver: cfg.Resolver,
		clock:    cfg.Clock,
		loc:      cfg.Location,
		language: normalizeLanguage(cfg.DefaultLanguage),
		allowed:  allowed,
		hooks:    filterHooks(cfg.Hooks),
	}, nil
}

// New builds a formatter from options
func New(opts ...Option) (*Formatter, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.BuildFormatter()
}

func (cfg *Config) applyLanguageCatalog() error {
	loader := NewLanguageDataLoader(cfg.languageDataPath)
	for _, path := range cfg.languageOverrides {
		loader.AddOverride(path)
	}

	catalog, err := loader.Catalog()
	if err != nil {
		return err
	}
	cfg.languageCatalog = catalog

	if catalog == nil {
		cfg.DefaultLanguage = normalizeLanguage(cfg.DefaultLanguage)
		cfg.Languages = normalizeLanguages(cfg.Languages)
		return nil
	}

	cfg.Languages = normalizeLanguages(cfg.Languages)
	for _, lang := range cfg.Languages {
		if !catalog.Has(lang) {
			return fmt.Errorf("%w: %q is not defined in the language catalog", ErrUnknownLanguage, lang)
		}
	}

	if cfg.DefaultLanguage != "" {
		cfg.DefaultLanguage = normalizeLanguage(cfg.DefaultLanguage)
		if !catalog.Has(cfg.DefaultLanguage) {
			return fmt.Errorf("%w: default %q is not defined in the language catalog", ErrUnknownLanguage, cfg.DefaultLanguage)
		}
		if !catalog.IsActive(cfg.DefaultLanguage) {
			return fmt.Errorf("%w: default %q is not marked active", ErrUnknownLanguage, cfg.DefaultLanguage)
		}
	}

	return nil
}
