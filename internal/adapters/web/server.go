package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"mailtmpl/internal/ports/input"
	"mailtmpl/internal/ports/output"
)

// maxUploadSize bounds template uploads.
const maxUploadSize = 5 << 20

// Server is the HTTP adapter exposing the editor commands as a JSON API.
type Server struct {
	editor     input.EditorUseCase
	translator output.Localizer
	router     *mux.Router
}

// NewServer wires the routes onto a fresh router.
func NewServer(editor input.EditorUseCase, translator output.Localizer) *Server {
	s := &Server{
		editor:     editor,
		translator: translator,
		router:     mux.NewRouter().StrictSlash(true),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)

	api.HandleFunc("/template", s.handleEditTemplate).Methods(http.MethodPut)
	api.HandleFunc("/template/new", s.handleNewTemplate).Methods(http.MethodPost)
	api.HandleFunc("/template/filename", s.handleSetFilename).Methods(http.MethodPut)
	api.HandleFunc("/template/load", s.handleLoadUpload).Methods(http.MethodPost)
	api.HandleFunc("/template/load/{name}", s.handleLoadStored).Methods(http.MethodPost)
	api.HandleFunc("/template/save", s.handleSave).Methods(http.MethodPost)
	api.HandleFunc("/templates", s.handleListStored).Methods(http.MethodGet)
	api.HandleFunc("/templates/{name}", s.handleDeleteStored).Methods(http.MethodDelete)

	api.HandleFunc("/placeholders", s.handleAddPlaceholder).Methods(http.MethodPost)
	api.HandleFunc("/placeholders/{id}", s.handleRenamePlaceholder).Methods(http.MethodPut)
	api.HandleFunc("/placeholders/{id}", s.handleDeletePlaceholder).Methods(http.MethodDelete)
	api.HandleFunc("/placeholders/{id}/translations/{locale}", s.handleSetTranslation).Methods(http.MethodPut)

	api.HandleFunc("/locales", s.handleAddLocale).Methods(http.MethodPost)
	api.HandleFunc("/locales/{locale}", s.handleRemoveLocale).Methods(http.MethodDelete)

	api.HandleFunc("/view", s.handleSwitchView).Methods(http.MethodPut)
	api.HandleFunc("/preview", s.handlePreview).Methods(http.MethodGet)
	api.HandleFunc("/preview/locale", s.handleSelectPreviewLocale).Methods(http.MethodPut)
}

// Handler returns the router wrapped with panic recovery and access logging.
func (s *Server) Handler() http.Handler {
	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.router)
	return handlers.CombinedLoggingHandler(os.Stdout, h)
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Éditeur de templates en écoute sur %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Arrêt du serveur HTTP...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
