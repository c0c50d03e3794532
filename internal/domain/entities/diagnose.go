package entities

import "strings"

type FindingKind string

const (
	FindingBlankName          FindingKind = "blank_name"
	FindingDuplicateName      FindingKind = "duplicate_name"
	FindingUnusedPlaceholder  FindingKind = "unused_placeholder"
	FindingMissingTranslation FindingKind = "missing_translation"
)

// Finding is a likely authoring mistake. None of them prevents rendering.
type Finding struct {
	Kind        FindingKind
	Placeholder PlaceholderID
	Name        string
	Locale      LocaleID // set for FindingMissingTranslation
}

// Diagnose lists blank and duplicate names (duplicates collapse on save),
// placeholders that never occur in the template and empty translations.
func (d *Document) Diagnose() []Finding {
	var out []Finding
	seen := map[string]bool{}
	for _, p := range d.placeholders {
		switch {
		case p.Name == "":
			out = append(out, Finding{Kind: FindingBlankName, Placeholder: p.ID})
			continue
		case seen[p.Name]:
			out = append(out, Finding{Kind: FindingDuplicateName, Placeholder: p.ID, Name: p.Name})
		case !strings.Contains(d.template, p.Name):
			out = append(out, Finding{Kind: FindingUnusedPlaceholder, Placeholder: p.ID, Name: p.Name})
		}
		seen[p.Name] = true
		for _, l := range d.locales {
			if p.Translations[l] == "" {
				out = append(out, Finding{Kind: FindingMissingTranslation, Placeholder: p.ID, Name: p.Name, Locale: l})
			}
		}
	}
	return out
}
