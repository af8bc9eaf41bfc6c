package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCatalog marks a malformed pattern catalog. It is fatal.
	ErrInvalidCatalog = errors.New("invalid pattern catalog")
	// ErrInvalidConfig marks a configuration value outside its allowed range.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrFileTooLarge is returned when a source file exceeds the size limit.
	ErrFileTooLarge = errors.New("file exceeds size limit")
	// ErrNotUTF8 is returned when a source file cannot be decoded as UTF-8.
	ErrNotUTF8 = errors.New("file is not valid UTF-8")
	// ErrSyntax is returned by parsers when a file does not parse.
	ErrSyntax = errors.New("syntax error")
)

// CatalogError describes which catalog entry failed validation.
type CatalogError struct {
	Language LanguageID
	Pattern  string
	Reason   string
}

func (e *CatalogError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("%s catalog: %s", e.Language, e.Reason)
	}
	return fmt.Sprintf("%s catalog: pattern %q: %s", e.Language, e.Pattern, e.Reason)
}

func (e *CatalogError) Unwrap() error { return ErrInvalidCatalog }
