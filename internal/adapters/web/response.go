package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"mailtmpl/internal/domain"
)

type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// uiLocale is the language of the editor's own messages for this request:
// ?lang= wins over Accept-Language.
func (s *Server) uiLocale(r *http.Request) string {
	return s.translator.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("❌ encode response: %v", err)
	}
}

func statusForCode(code string) int {
	switch code {
	case "malformed_input", "missing_template", "invalid_locale", "invalid_view", "invalid_template_name":
		return http.StatusBadRequest
	case "placeholder_not_found", "template_not_found":
		return http.StatusNotFound
	case "action_not_confirmed":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a domain error to a status and a message in the UI locale.
// Unconfirmed destructive actions answer 409 with the confirmation prompt.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, data map[string]any) {
	locale := s.uiLocale(r)

	var confirm *domain.ConfirmationError
	if errors.As(err, &confirm) {
		prompt := s.translator.T(locale, confirm.Prompt, nil)
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:  prompt,
			Code:   "action_not_confirmed",
			Prompt: prompt,
		})
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Error: s.translator.T(locale, "error.too_large", nil),
			Code:  "too_large",
		})
		return
	}

	code := domain.Code(err)
	status := statusForCode(code)
	key := "error." + code
	if code == "" {
		key = "error.unexpected"
		log.Printf("❌ %s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorResponse{
		Error: s.translator.T(locale, key, data),
		Code:  code,
	})
}

func (s *Server) writeBadRequest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: s.translator.T(s.uiLocale(r), "error.bad_request", nil),
		Code:  "bad_request",
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// confirmed reads ?confirm=true.
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}
