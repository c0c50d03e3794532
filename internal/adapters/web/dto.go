package web

import (
	"time"

	"mailtmpl/internal/domain/entities"
)

type placeholderDTO struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	Translations map[string]string `json:"translations"`
}

type stateDTO struct {
	Filename          string           `json:"filename"`
	Template          string           `json:"template"`
	Locales           []string         `json:"locales"`
	Placeholders      []placeholderDTO `json:"placeholders"`
	View              string           `json:"view"`
	PreviewLocale     string           `json:"preview_locale,omitempty"`
	Dirty             bool             `json:"dirty"`
	JustLoaded        bool             `json:"just_loaded"`
	UnsavedChanges    bool             `json:"unsaved_changes"`
	LeaveWarning      string           `json:"leave_warning,omitempty"`
	SubstitutionOrder string           `json:"substitution_order"`
}

type previewDTO struct {
	Locale string `json:"locale,omitempty"`
	Source string `json:"source"`
}

type storedTemplateDTO struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toStateDTO(st entities.EditorState) stateDTO {
	out := stateDTO{
		Filename:          st.Filename,
		Template:          st.Template,
		Locales:           make([]string, len(st.Locales)),
		Placeholders:      make([]placeholderDTO, len(st.Placeholders)),
		View:              string(st.View),
		Dirty:             st.Dirty,
		JustLoaded:        st.JustLoaded,
		UnsavedChanges:    st.UnsavedChanges,
		SubstitutionOrder: st.Order.String(),
	}
	for i, l := range st.Locales {
		out.Locales[i] = string(l)
	}
	for i, p := range st.Placeholders {
		tr := make(map[string]string, len(p.Translations))
		for l, text := range p.Translations {
			tr[string(l)] = text
		}
		out.Placeholders[i] = placeholderDTO{ID: uint64(p.ID), Name: p.Name, Translations: tr}
	}
	if st.PreviewLocale != nil {
		out.PreviewLocale = string(*st.PreviewLocale)
	}
	return out
}

func toPreviewDTO(p entities.Preview) previewDTO {
	out := previewDTO{Source: p.Source}
	if p.Locale != nil {
		out.Locale = string(*p.Locale)
	}
	return out
}
