package reldate

import "errors"

// ErrNoCatalogPaths indicates a catalog loader was built without any file
var ErrNoCatalogPaths = errors.New("reldate: no catalog paths configured")

// ErrUnsupportedCatalog marks catalog files with an unknown extension
var ErrUnsupportedCatalog = errors.New("reldate: unsupported catalog format")

// ErrUnknownLanguage is returned by configuration when a language is not defined in the language catalog
var ErrUnknownLanguage = errors.New("reldate: unknown language")
