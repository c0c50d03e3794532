package entities

import (
	"fmt"
	"slices"

	"mailtmpl/internal/domain"
)

// Document is the in-memory translation table of a template: one row per
// placeholder, one column per locale. Rows and columns keep insertion order.
//
// A Document is not safe for concurrent use.
type Document struct {
	template     string
	locales      []LocaleID
	placeholders []*Placeholder
	nextID       PlaceholderID
	order        SubstitutionOrder
}

// NewDocument returns an empty document rendering with OrderLongestFirst.
func NewDocument() *Document {
	return &Document{order: OrderLongestFirst}
}

func (d *Document) Template() string {
	return d.template
}

// SetTemplate replaces the authoring text. Rendering never writes back here.
func (d *Document) SetTemplate(text string) {
	d.template = text
}

func (d *Document) SubstitutionOrder() SubstitutionOrder {
	return d.order
}

func (d *Document) SetSubstitutionOrder(order SubstitutionOrder) {
	d.order = order
}

// Locales returns a copy of the locale columns in insertion order.
func (d *Document) Locales() []LocaleID {
	return slices.Clone(d.locales)
}

func (d *Document) HasLocale(code string) bool {
	return slices.Contains(d.locales, NormalizeLocale(code))
}

// Placeholders returns deep copies of the rows in insertion order.
func (d *Document) Placeholders() []Placeholder {
	out := make([]Placeholder, len(d.placeholders))
	for i, p := range d.placeholders {
		out[i] = p.clone()
	}
	return out
}

// Placeholder returns a copy of the row identified by id.
func (d *Document) Placeholder(id PlaceholderID) (Placeholder, error) {
	p := d.find(id)
	if p == nil {
		return Placeholder{}, fmt.Errorf("placeholder %d: %w", id, domain.ErrPlaceholderNotFound)
	}
	return p.clone(), nil
}

// Translation returns the text stored for (id, locale) and whether the slot exists.
func (d *Document) Translation(id PlaceholderID, locale LocaleID) (string, bool) {
	p := d.find(id)
	if p == nil {
		return "", false
	}
	return p.Translation(locale)
}

// AddPlaceholder appends a row named name with an empty slot for every known locale.
func (d *Document) AddPlaceholder(name string) PlaceholderID {
	d.nextID++
	p := &Placeholder{
		ID:           d.nextID,
		Name:         name,
		Translations: make(map[LocaleID]string, len(d.locales)),
	}
	for _, l := range d.locales {
		p.Translations[l] = ""
	}
	d.placeholders = append(d.placeholders, p)
	return p.ID
}

// RemovePlaceholder deletes the row and its translations. Unknown ids are ignored.
func (d *Document) RemovePlaceholder(id PlaceholderID) {
	d.placeholders = slices.DeleteFunc(d.placeholders, func(p *Placeholder) bool {
		return p.ID == id
	})
}

// RenamePlaceholder changes the token matched for the row during rendering.
func (d *Document) RenamePlaceholder(id PlaceholderID, name string) error {
	p := d.find(id)
	if p == nil {
		return fmt.Errorf("placeholder %d: %w", id, domain.ErrPlaceholderNotFound)
	}
	p.Name = name
	return nil
}

// AddLocale registers a locale column and back-fills an empty slot on every
// row. Adding a code that already exists returns the existing column.
func (d *Document) AddLocale(code string) (LocaleID, error) {
	id := NormalizeLocale(code)
	if id == "" {
		return "", fmt.Errorf("locale %q: %w", code, domain.ErrInvalidLocale)
	}
	if slices.Contains(d.locales, id) {
		return id, nil
	}
	d.locales = append(d.locales, id)
	for _, p := range d.placeholders {
		if _, ok := p.Translations[id]; !ok {
			p.Translations[id] = ""
		}
	}
	return id, nil
}

// RemoveLocale drops a column and every translation stored under it.
func (d *Document) RemoveLocale(code string) {
	id := NormalizeLocale(code)
	idx := slices.Index(d.locales, id)
	if idx < 0 {
		return
	}
	d.locales = slices.Delete(d.locales, idx, idx+1)
	for _, p := range d.placeholders {
		delete(p.Translations, id)
	}
}

// SetTranslation upserts the text for (id, locale). A locale unknown to the
// document is registered first.
func (d *Document) SetTranslation(id PlaceholderID, locale string, text string) error {
	p := d.find(id)
	if p == nil {
		return fmt.Errorf("placeholder %d: %w", id, domain.ErrPlaceholderNotFound)
	}
	l, err := d.AddLocale(locale)
	if err != nil {
		return err
	}
	p.Translations[l] = text
	return nil
}

// Render substitutes the placeholders for locale into the template. A nil
// locale returns the raw template.
func (d *Document) Render(locale *LocaleID) string {
	if locale == nil {
		return d.template
	}
	return RenderTemplate(d.template, d.Placeholders(), *locale, d.order)
}

func (d *Document) find(id PlaceholderID) *Placeholder {
	for _, p := range d.placeholders {
		if p.ID == id {
			return p
		}
	}
	return nil
}
