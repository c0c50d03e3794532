package entities

import (
	"maps"
	"strings"
)

// PlaceholderID identifies a placeholder row for the lifetime of a document.
// Names are user-editable, so they cannot serve as identity.
type PlaceholderID uint64

// LocaleID is the locale code itself (e.g. "fr", "en-GB").
type LocaleID string

// NormalizeLocale trims surrounding whitespace from a user supplied locale code.
func NormalizeLocale(code string) LocaleID {
	return LocaleID(strings.TrimSpace(code))
}

// Placeholder is one row of the translation table.
type Placeholder struct {
	ID           PlaceholderID
	Name         string
	Translations map[LocaleID]string // one slot per locale of the document
}

// Translation returns the text for locale and whether the slot exists.
func (p Placeholder) Translation(locale LocaleID) (string, bool) {
	text, ok := p.Translations[locale]
	return text, ok
}

func (p *Placeholder) clone() Placeholder {
	return Placeholder{
		ID:           p.ID,
		Name:         p.Name,
		Translations: maps.Clone(p.Translations),
	}
}
