package web

import (
	"net/http"

	"mailtmpl/internal/domain/entities"
)

func (s *Server) handleSwitchView(w http.ResponseWriter, r *http.Request) {
	var body struct {
		View string `json:"view"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		s.writeBadRequest(w, r)
		return
	}
	p, err := s.editor.SwitchView(r.Context(), entities.View(body.View))
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, toPreviewDTO(p))
}

func (s *Server) handleSelectPreviewLocale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Locale string `json:"locale"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		s.writeBadRequest(w, r)
		return
	}
	p, err := s.editor.SelectPreviewLocale(r.Context(), body.Locale)
	if err != nil {
		s.writeError(w, r, err, map[string]any{"Locale": body.Locale})
		return
	}
	writeJSON(w, http.StatusOK, toPreviewDTO(p))
}

// handlePreview renders ?locale= when given, otherwise the selected preview.
// ?format=html returns the rendered HTML itself.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var p entities.Preview
	if q.Has("locale") {
		locale := entities.NormalizeLocale(q.Get("locale"))
		p.Source = s.editor.Render(r.Context(), string(locale))
		if locale != "" {
			p.Locale = &locale
		}
	} else {
		p = s.editor.Preview(r.Context())
	}

	if q.Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(p.Source))
		return
	}
	writeJSON(w, http.StatusOK, toPreviewDTO(p))
}
