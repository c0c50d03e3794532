package web

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mailtmpl/internal/domain"
	"mailtmpl/internal/domain/entities"
)

func placeholderID(r *http.Request) (entities.PlaceholderID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrPlaceholderNotFound
	}
	return entities.PlaceholderID(id), nil
}

func (s *Server) handleAddPlaceholder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &body); err != nil {
			s.writeBadRequest(w, r)
			return
		}
	}
	if _, err := s.editor.AddPlaceholder(r.Context(), body.Name); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.writeState(w, r, http.StatusCreated)
}

func (s *Server) handleRenamePlaceholder(w http.ResponseWriter, r *http.Request) {
	id, err := placeholderID(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		s.writeBadRequest(w, r)
		return
	}
	if err := s.editor.RenamePlaceholder(r.Context(), id, body.Name); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.writeState(w, r, http.StatusOK)
}

// handleDeletePlaceholder needs ?confirm=true. Unknown ids succeed.
func (s *Server) handleDeletePlaceholder(w http.ResponseWriter, r *http.Request) {
	id, err := placeholderID(r)
	if err != nil {
		// not a valid id: nothing to delete
		s.writeState(w, r, http.StatusOK)
		return
	}
	if err := s.editor.DeletePlaceholder(r.Context(), id, confirmed(r)); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.writeState(w, r, http.StatusOK)
}

func (s *Server) handleSetTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := placeholderID(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	locale := mux.Vars(r)["locale"]
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		s.writeBadRequest(w, r)
		return
	}
	if err := s.editor.SetTranslation(r.Context(), id, locale, body.Text); err != nil {
		s.writeError(w, r, err, map[string]any{"Locale": locale})
		return
	}
	s.writeState(w, r, http.StatusOK)
}

func (s *Server) handleAddLocale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		s.writeBadRequest(w, r)
		return
	}
	if _, err := s.editor.AddLocale(r.Context(), body.Code); err != nil {
		s.writeError(w, r, err, map[string]any{"Locale": body.Code})
		return
	}
	s.writeState(w, r, http.StatusCreated)
}

func (s *Server) handleRemoveLocale(w http.ResponseWriter, r *http.Request) {
	if err := s.editor.RemoveLocale(r.Context(), mux.Vars(r)["locale"]); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.writeState(w, r, http.StatusOK)
}
