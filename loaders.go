package reldate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// CatalogLoader adds phrase messages to a bundle
type CatalogLoader interface {
	LoadInto(bundle *i18n.Bundle) error
}

// CatalogLoaderFunc adapters allow bare functions to implement CatalogLoader
type CatalogLoaderFunc func(bundle *i18n.Bundle) error

// LoadInto implements CatalogLoader for CatalogLoaderFunc
func (fn CatalogLoaderFunc) LoadInto(bundle *i18n.Bundle) error {
	return fn(bundle)
}

var supportedCatalogExtensions = map[string]struct{}{
	".toml": {},
	".yaml": {},
	".yml":  {},
	".json": {},
}

// FileLoader reads go-i18n message files from disk. The language is taken
// from the file name, so `overrides/de.yaml` and `app.de.toml` both target de.
type FileLoader struct {
	paths []string
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

func (l *FileLoader) LoadInto(bundle *i18n.Bundle) error {
	if l == nil || len(l.paths) == 0 {
		return ErrNoCatalogPaths
	}
	if bundle == nil {
		return fmt.Errorf("reldate: nil bundle")
	}

	for _, path := range l.paths {
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := supportedCatalogExtensions[ext]; !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedCatalog, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reldate: read %s: %w", path, err)
		}

		if _, err := bundle.ParseMessageFileBytes(data, filepath.Base(path)); err != nil {
			return fmt.Errorf("reldate: decode %s: %w", path, err)
		}
	}

	return nil
}

// MessagesLoader registers messages defined in code for a single language
type MessagesLoader struct {
	Language string
	Messages []*i18n.Message
}

func (l MessagesLoader) LoadInto(bundle *i18n.Bundle) error {
	if bundle == nil || len(l.Messages) == 0 {
		return nil
	}
	tag := normalizeLanguage(l.Language)
	if tag == "" {
		return fmt.Errorf("reldate: messages loader without language")
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("reldate: messages loader: %w", err)
	}
	return bundle.AddMessages(parsed, l.Messages...)
}
