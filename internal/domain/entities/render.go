package entities

import (
	"fmt"
	"sort"
	"strings"
)

// SubstitutionOrder decides which placeholder wins when several names match
// at the same position of the template (one name being a prefix of another).
type SubstitutionOrder int

const (
	// OrderLongestFirst prefers the longest name; equal lengths fall back to
	// insertion order.
	OrderLongestFirst SubstitutionOrder = iota
	// OrderInsertion prefers the placeholder added first.
	OrderInsertion
)

func (o SubstitutionOrder) String() string {
	switch o {
	case OrderInsertion:
		return "insertion"
	default:
		return "longest-first"
	}
}

// ParseSubstitutionOrder accepts "longest-first" and "insertion". Empty means
// OrderLongestFirst.
func ParseSubstitutionOrder(s string) (SubstitutionOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "longest-first":
		return OrderLongestFirst, nil
	case "insertion":
		return OrderInsertion, nil
	default:
		return OrderLongestFirst, fmt.Errorf("unknown substitution order %q", s)
	}
}

// RenderTemplate replaces every literal occurrence of each placeholder name
// with its translation for locale. Placeholders with an empty name or without
// a slot for locale are skipped.
//
// The template is scanned once, so substituted text is never matched again by
// another placeholder. Among duplicate names the first one in order wins.
func RenderTemplate(template string, placeholders []Placeholder, locale LocaleID, order SubstitutionOrder) string {
	candidates := make([]Placeholder, 0, len(placeholders))
	for _, p := range placeholders {
		if p.Name == "" {
			continue
		}
		if _, ok := p.Translations[locale]; !ok {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return template
	}
	if order == OrderLongestFirst {
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i].Name) > len(candidates[j].Name)
		})
	}

	oldnew := make([]string, 0, 2*len(candidates))
	for _, p := range candidates {
		oldnew = append(oldnew, p.Name, p.Translations[locale])
	}
	return strings.NewReplacer(oldnew...).Replace(template)
}
