package reldate

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/languages.yaml
var defaultLanguagesYAML []byte

// LanguageData is the file representation of a language catalog
type LanguageData struct {
	DefaultLanguage string                        `yaml:"default_language" json:"default_language"`
	Languages       map[string]LanguageDefinition `yaml:"languages" json:"languages"`
}

// LanguageDataLoader loads language tables from the embedded defaults plus files
type LanguageDataLoader struct {
	path      string
	overrides []string
}

// NewLanguageDataLoader creates a loader. An empty path keeps only the embedded table.
func NewLanguageDataLoader(path string) *LanguageDataLoader {
	return &LanguageDataLoader{path: path}
}

// AddOverride registers a file merged after the main path
func (l *LanguageDataLoader) AddOverride(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	l.overrides = append(l.overrides, path)
}

// Load reads the embedded table and merges configured files on top
func (l *LanguageDataLoader) Load() (*LanguageData, error) {
	var data LanguageData
	if err := yaml.Unmarshal(defaultLanguagesYAML, &data); err != nil {
		return nil, fmt.Errorf("parse default languages: %w", err)
	}

	if l.path != "" {
		userData, err := readLanguageData(l.path)
		if err != nil {
			return nil, fmt.Errorf("load language data: %w", err)
		}
		mergeLanguageData(&data, userData)
	}

	for _, path := range l.overrides {
		override, err := readLanguageData(path)
		if err != nil {
			return nil, fmt.Errorf("load language override %q: %w", path, err)
		}
		mergeLanguageData(&data, override)
	}

	return &data, nil
}

// Catalog loads the data and builds an immutable catalog from it
func (l *LanguageDataLoader) Catalog() (*LanguageCatalog, error) {
	data, err := l.Load()
	if err != nil {
		return nil, err
	}
	return newLanguageCatalog(data.DefaultLanguage, data.Languages)
}

func readLanguageData(path string) (*LanguageData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data LanguageData
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, &data)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCatalog, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &data, nil
}

// mergeLanguageData merges source into dest (source takes precedence)
func mergeLanguageData(dest, source *LanguageData) {
	if source == nil {
		return
	}

	if source.DefaultLanguage != "" {
		dest.DefaultLanguage = source.DefaultLanguage
	}

	if source.Languages != nil {
		if dest.Languages == nil {
			dest.Languages = make(map[string]LanguageDefinition)
		}
		for code, definition := range source.Languages {
			dest.Languages[code] = definition
		}
	}
}
