package i18n

import (
	"strings"
	"testing"
)

func TestTranslator_T(t *testing.T) {
	tr := NewTranslator("fr")

	tests := []struct {
		locale string
		key    string
		data   map[string]any
		want   string
	}{
		{"en", "prompt.delete_placeholder", nil, "Are you sure you want to delete this placeholder?"},
		{"fr", "prompt.delete_placeholder", nil, "Voulez-vous vraiment supprimer ce placeholder ?"},
		{"en", "prompt.delete_stored", nil, "Are you sure you want to delete this saved template?"},
		{"", "error.template_not_found", nil, "Template introuvable."},
		{"ja", "error.template_not_found", nil, "Template introuvable."},
		{"en", "label.translation_for", map[string]any{"Locale": "ja"}, "Translation for ja"},
		{"en", "does.not.exist", nil, "does.not.exist"},
		{"en", "", nil, ""},
	}
	for _, tt := range tests {
		if got := tr.T(tt.locale, tt.key, tt.data); got != tt.want {
			t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
		}
	}
}

func TestTranslator_placeholderHintKeepsDollars(t *testing.T) {
	tr := NewTranslator("en")
	if got := tr.T("en", "label.placeholder_hint", nil); !strings.Contains(got, "$$hello$$") {
		t.Errorf("hint = %q", got)
	}
}

func TestTranslator_Match(t *testing.T) {
	tr := NewTranslator("fr")
	tests := []struct {
		prefs []string
		want  string
	}{
		{nil, "fr"},
		{[]string{"en-US,en;q=0.9"}, "en"},
		{[]string{"de-DE"}, "fr"},
		{[]string{"", "fr-CA"}, "fr"},
		{[]string{"not a tag;;"}, "fr"},
	}
	for _, tt := range tests {
		if got := tr.Match(tt.prefs...); got != tt.want {
			t.Errorf("Match(%v) = %q, want %q", tt.prefs, got, tt.want)
		}
	}
}

func TestNewTranslator_invalidDefault(t *testing.T) {
	tr := NewTranslator("???")
	if got := tr.T("", "error.unexpected", nil); got != "Une erreur est survenue." {
		t.Errorf("T() = %q", got)
	}
}
