package reldate

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.toml
var localeFS embed.FS

// PhraseStore exposes read only access to the localized relative date phrases
type PhraseStore interface {
	// Phrase renders message id for the candidate languages, most preferred first.
	// count < 0 renders the message without plural selection.
	Phrase(candidates []string, id string, count int) Phrase
	// Languages returns the languages known to the store
	Languages() []string
}

// Phrase is a rendered message plus the language it was resolved in
type Phrase struct {
	Text     string
	Language string
}

// BundleStore is a PhraseStore backed by a go-i18n bundle, read only after construction
type BundleStore struct {
	bundle      *i18n.Bundle
	defaultTag  language.Tag
	languages   []string
	exact       map[string]language.Tag
	bases       map[language.Base]language.Tag
	mu          sync.RWMutex
	localizers  map[string]localizerEntry
	printers    map[language.Tag]*countPrinter
	printerLock sync.Mutex
}

var _ PhraseStore = &BundleStore{}

// NewBundleStore builds a store from the embedded catalogs plus the given loaders,
// applied in order so later files win.
func NewBundleStore(defaultLanguage string, loaders ...CatalogLoader) (*BundleStore, error) {
	defaultTag, err := language.Parse(normalizeLanguage(defaultLanguage))
	if err != nil || defaultTag == language.Und {
		defaultTag = language.English
	}

	bundle := newBundle(defaultTag)

	if err := loadEmbeddedCatalogs(bundle, localeFS, "locales"); err != nil {
		return nil, err
	}

	for _, loader := range loaders {
		if loader == nil {
			continue
		}
		if err := loader.LoadInto(bundle); err != nil {
			return nil, err
		}
	}

	tags := bundle.LanguageTags()
	languages := make([]string, 0, len(tags))
	exact := make(map[string]language.Tag, len(tags))
	bases := make(map[language.Base]language.Tag, len(tags))
	for _, tag := range tags {
		languages = append(languages, tag.String())
		exact[strings.ToLower(tag.String())] = tag
		base, _ := tag.Base()
		// the bare base tag wins over regional variants
		if _, ok := bases[base]; !ok || tag.String() == base.String() {
			bases[base] = tag
		}
	}

	return &BundleStore{
		bundle:     bundle,
		defaultTag: defaultTag,
		languages:  normalizeLanguages(languages),
		exact:      exact,
		bases:      bases,
		localizers: make(map[string]localizerEntry),
		printers:   make(map[language.Tag]*countPrinter),
	}, nil
}

func newBundle(defaultTag language.Tag) *i18n.Bundle {
	bundle := i18n.NewBundle(defaultTag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)
	return bundle
}

func loadEmbeddedCatalogs(bundle *i18n.Bundle, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reldate: read embedded catalogs: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(fsys, path.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("reldate: parse embedded catalog %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Languages returns the sorted list of languages with at least one catalog
func (s *BundleStore) Languages() []string {
	if s == nil || len(s.languages) == 0 {
		return nil
	}
	out := make([]string, len(s.languages))
	copy(out, s.languages)
	return out
}

// DefaultLanguage returns the language used when no candidate matches
func (s *BundleStore) DefaultLanguage() string {
	if s == nil {
		return language.English.String()
	}
	return s.defaultTag.String()
}

func (s *BundleStore) Phrase(candidates []string, id string, count int) Phrase {
	if s == nil || s.bundle == nil {
		return Phrase{}
	}

	entry := s.localizer(candidates)

	cfg := &i18n.LocalizeConfig{MessageID: id}
	if count >= 0 {
		cfg.PluralCount = count
		cfg.TemplateData = map[string]any{"Count": s.printer(entry.tag).format(count)}
	}

	// a non-empty text with an error is a best effort fallback, keep it
	text, tag, err := entry.localizer.LocalizeWithTag(cfg)
	if err != nil && text == "" {
		return Phrase{}
	}

	return Phrase{Text: text, Language: tag.String()}
}

func (s *BundleStore) printer(tag language.Tag) *countPrinter {
	s.printerLock.Lock()
	defer s.printerLock.Unlock()

	if p, ok := s.printers[tag]; ok {
		return p
	}
	p := newCountPrinter(tag)
	s.printers[tag] = p
	return p
}

type localizerEntry struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// known maps candidates onto the bundle's languages, dropping codes no catalog
// covers. A candidate matches a bundle tag exactly or by base language.
func (s *BundleStore) known(candidates []string) []string {
	var out []string
	seen := make(map[language.Tag]struct{}, len(candidates))
	for _, candidate := range candidates {
		tag, ok := s.exact[strings.ToLower(candidate)]
		if !ok {
			parsed, err := language.Parse(candidate)
			if err != nil {
				continue
			}
			base, confidence := parsed.Base()
			if confidence == language.No {
				continue
			}
			if tag, ok = s.bases[base]; !ok {
				continue
			}
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag.String())
	}
	return out
}

// localizer returns the cached localizer for the candidates. The cache is keyed
// by the matched bundle languages so arbitrary codes cannot grow it.
func (s *BundleStore) localizer(candidates []string) localizerEntry {
	langs := append(s.known(candidates), s.defaultTag.String())
	key := strings.Join(langs, ",")

	s.mu.RLock()
	if cached, ok := s.localizers[key]; ok {
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.localizers[key]; ok {
		return cached
	}

	localizer := i18n.NewLocalizer(s.bundle, langs...)

	// every shipped catalog defines relative.now, so it identifies the matched language
	_, tag, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: msgNow})
	if err != nil || tag == language.Und {
		tag = s.defaultTag
	}

	entry := localizerEntry{localizer: localizer, tag: tag}
	s.localizers[key] = entry
	return entry
}
