package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"mailtmpl/internal/infrastructure/codec"
)

func (s *Server) writeState(w http.ResponseWriter, r *http.Request, status int) {
	st := toStateDTO(s.editor.Snapshot(r.Context()))
	if st.UnsavedChanges {
		st.LeaveWarning = s.translator.T(s.uiLocale(r), "prompt.leave", nil)
	}
	writeJSON(w, status, st)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, r, http.StatusOK)
}

func (s *Server) handleNewTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.editor.NewTemplate(r.Context(), confirmed(r)); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.writeState(w, r, http.StatusOK)
}

func (s *Server) handleEditTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Template string `json:"template"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		s.writeBadRequest(w, r)
		return
	}
	if err := s.editor.EditTemplate(r.Context(), body.Template); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.writeState(w, r, http.StatusOK)
}

func (s *Server) handleSetFilename(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Filename string `json:"filename"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		s.writeBadRequest(w, r)
		return
	}
	if err := s.editor.SetFilename(r.Context(), body.Filename); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.writeState(w, r, http.StatusOK)
}

// handleLoadUpload accepts either a multipart form with a "file" field or the
// raw JSON document as body, named by ?filename=.
func (s *Server) handleLoadUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	var (
		filename = r.URL.Query().Get("filename")
		content  io.Reader
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			s.writeBadRequest(w, r)
			return
		}
		defer file.Close()
		filename = header.Filename
		content = file
	} else {
		content = r.Body
	}
	if filename == "" {
		filename = codec.DefaultFilename + codec.Extension
	}

	if err := s.editor.Load(r.Context(), filename, content, confirmed(r)); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.writeState(w, r, http.StatusOK)
}

func (s *Server) handleLoadStored(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.editor.LoadStored(r.Context(), name, confirmed(r)); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.writeState(w, r, http.StatusOK)
}

// handleSave answers with the file itself as an attachment named
// <filename>.json.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	file, err := s.editor.Save(r.Context())
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("X-Template-Stored", strconv.FormatBool(file.Stored))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

func (s *Server) handleListStored(w http.ResponseWriter, r *http.Request) {
	items, err := s.editor.ListStored(r.Context())
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	out := make([]storedTemplateDTO, len(items))
	for i, it := range items {
		out[i] = storedTemplateDTO{Name: it.Name, Size: it.Size, UpdatedAt: it.UpdatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteStored(w http.ResponseWriter, r *http.Request) {
	if err := s.editor.DeleteStored(r.Context(), mux.Vars(r)["name"], confirmed(r)); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
