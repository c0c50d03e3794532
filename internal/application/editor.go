package application

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"mailtmpl/internal/domain"
	"mailtmpl/internal/domain/entities"
	"mailtmpl/internal/infrastructure/codec"
	"mailtmpl/internal/ports/input"
	"mailtmpl/internal/ports/output"
)

var _ input.EditorUseCase = (*EditorService)(nil)

// Prompt keys returned in *domain.ConfirmationError.
const (
	PromptDiscardOnNew      = "prompt.discard_on_new"
	PromptDiscardOnLoad     = "prompt.discard_on_load"
	PromptDeletePlaceholder = "prompt.delete_placeholder"
	PromptDeleteStored      = "prompt.delete_stored"
)

// EditorService owns a single editing session: the document, the current
// file name, the selected view and preview locale, and the unsaved-changes
// flags.
//
// Every edit sets dirty and clears justLoaded. A successful load sets
// justLoaded and clears dirty; new-template and save clear dirty.
type EditorService struct {
	mu    sync.Mutex
	store output.TemplateStore
	order entities.SubstitutionOrder

	doc           *entities.Document
	filename      string
	view          entities.View
	previewLocale *entities.LocaleID
	dirty         bool
	justLoaded    bool
}

func NewEditorService(store output.TemplateStore, order entities.SubstitutionOrder) *EditorService {
	s := &EditorService{
		store: store,
		order: order,
	}
	s.reset()
	return s
}

func (s *EditorService) reset() {
	s.doc = entities.NewDocument()
	s.doc.SetSubstitutionOrder(s.order)
	s.filename = codec.DefaultFilename
	s.view = entities.ViewSettings
	s.previewLocale = nil
	s.dirty = false
	s.justLoaded = false
}

func (s *EditorService) touch() {
	s.dirty = true
	s.justLoaded = false
}

func (s *EditorService) unsaved() bool {
	return s.dirty && !s.justLoaded
}

// HasUnsavedChanges reports whether leaving now would lose edits.
func (s *EditorService) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsaved()
}

func (s *EditorService) NewTemplate(ctx context.Context, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsaved() && !confirmed {
		return &domain.ConfirmationError{Action: "new", Prompt: PromptDiscardOnNew}
	}
	s.reset()
	return nil
}

// Load replaces the session with the template file read from r. filename is
// the name of the uploaded file; its extension is dropped. On failure the
// session is left untouched.
func (s *EditorService) Load(ctx context.Context, filename string, r io.Reader, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsaved() && !confirmed {
		return &domain.ConfirmationError{Action: "load", Prompt: PromptDiscardOnLoad}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	return s.replace(codec.FilenameFromPath(filename), data)
}

// LoadStored loads the template saved under name in the store.
func (s *EditorService) LoadStored(ctx context.Context, name string, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsaved() && !confirmed {
		return &domain.ConfirmationError{Action: "load", Prompt: PromptDiscardOnLoad}
	}
	data, err := s.store.Load(ctx, name)
	if err != nil {
		return err
	}
	return s.replace(name, data)
}

func (s *EditorService) replace(filename string, data []byte) error {
	doc, err := codec.Decode(data)
	if err != nil {
		return err
	}
	doc.SetSubstitutionOrder(s.order)
	s.doc = doc
	s.filename = filename
	s.previewLocale = nil
	s.dirty = false
	s.justLoaded = true
	return nil
}

// Save encodes the session and returns the file to hand to the user as
// <filename>.json. The file is also written to the store; a store failure
// is logged and reported through SavedFile.Stored, never by withholding
// the file.
func (s *EditorService) Save(ctx context.Context) (entities.SavedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := codec.Encode(s.doc)
	if err != nil {
		return entities.SavedFile{}, fmt.Errorf("encode template: %w", err)
	}
	file := entities.SavedFile{
		Filename: s.filename + codec.Extension,
		Data:     data,
		Stored:   true,
	}
	if err := s.store.Save(ctx, s.filename, data); err != nil {
		log.Printf("⚠️ Template %q non enregistré dans le stockage: %v", s.filename, err)
		file.Stored = false
	}
	s.dirty = false
	return file, nil
}

func (s *EditorService) ListStored(ctx context.Context) ([]entities.StoredTemplate, error) {
	return s.store.List(ctx)
}

// DeleteStored removes a template from the store. It always asks for
// confirmation and leaves the current session alone.
func (s *EditorService) DeleteStored(ctx context.Context, name string, confirmed bool) error {
	if !confirmed {
		return &domain.ConfirmationError{Action: "delete-stored", Prompt: PromptDeleteStored}
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete stored template %q: %w", name, err)
	}
	return nil
}

// SetFilename renames the file the next save writes to.
func (s *EditorService) SetFilename(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		name = codec.DefaultFilename
	}
	s.filename = codec.FilenameFromPath(name + codec.Extension)
	return nil
}

func (s *EditorService) EditTemplate(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SetTemplate(text)
	s.touch()
	return nil
}

func (s *EditorService) AddPlaceholder(ctx context.Context, name string) (entities.PlaceholderID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.doc.AddPlaceholder(name)
	s.touch()
	return id, nil
}

func (s *EditorService) RenamePlaceholder(ctx context.Context, id entities.PlaceholderID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.doc.RenamePlaceholder(id, name); err != nil {
		return err
	}
	s.touch()
	return nil
}

// DeletePlaceholder always asks for confirmation. Deleting an unknown id is a
// no-op.
func (s *EditorService) DeletePlaceholder(ctx context.Context, id entities.PlaceholderID, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !confirmed {
		return &domain.ConfirmationError{Action: "delete_placeholder", Prompt: PromptDeletePlaceholder}
	}
	if _, err := s.doc.Placeholder(id); err != nil {
		return nil
	}
	s.doc.RemovePlaceholder(id)
	s.touch()
	return nil
}

func (s *EditorService) AddLocale(ctx context.Context, code string) (entities.LocaleID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existed := s.doc.HasLocale(code)
	id, err := s.doc.AddLocale(code)
	if err != nil {
		return "", err
	}
	if !existed {
		s.touch()
	}
	return id, nil
}

func (s *EditorService) RemoveLocale(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.doc.HasLocale(code) {
		return nil
	}
	s.doc.RemoveLocale(code)
	if s.previewLocale != nil && *s.previewLocale == entities.NormalizeLocale(code) {
		s.previewLocale = nil
	}
	s.touch()
	return nil
}

func (s *EditorService) SetTranslation(ctx context.Context, id entities.PlaceholderID, locale, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.doc.SetTranslation(id, locale, text); err != nil {
		return err
	}
	s.touch()
	return nil
}

// SwitchView changes tab. Entering the preview keeps the selected locale when
// it still exists and otherwise selects the first locale, or the raw template
// when there is none.
func (s *EditorService) SwitchView(ctx context.Context, view entities.View) (entities.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !view.Valid() {
		return entities.Preview{}, fmt.Errorf("view %q: %w", view, domain.ErrInvalidView)
	}
	s.view = view
	if view == entities.ViewPreview {
		if s.previewLocale == nil || !s.doc.HasLocale(string(*s.previewLocale)) {
			s.previewLocale = nil
			if locales := s.doc.Locales(); len(locales) > 0 {
				first := locales[0]
				s.previewLocale = &first
			}
		}
	}
	return s.preview(), nil
}

// SelectPreviewLocale renders the preview for code. An empty code selects the
// raw template.
func (s *EditorService) SelectPreviewLocale(ctx context.Context, code string) (entities.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(code) == "" {
		s.previewLocale = nil
		return s.preview(), nil
	}
	if !s.doc.HasLocale(code) {
		return entities.Preview{}, fmt.Errorf("locale %q: %w", code, domain.ErrInvalidLocale)
	}
	l := entities.NormalizeLocale(code)
	s.previewLocale = &l
	return s.preview(), nil
}

func (s *EditorService) Preview(ctx context.Context) entities.Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview()
}

func (s *EditorService) preview() entities.Preview {
	p := entities.Preview{Source: s.doc.Render(s.previewLocale)}
	if s.previewLocale != nil {
		l := *s.previewLocale
		p.Locale = &l
	}
	return p
}

// Render substitutes locale into the template without changing the selected
// preview. An empty locale returns the raw template.
func (s *EditorService) Render(ctx context.Context, locale string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(locale) == "" {
		return s.doc.Render(nil)
	}
	l := entities.NormalizeLocale(locale)
	return s.doc.Render(&l)
}

func (s *EditorService) Snapshot(ctx context.Context) entities.EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := entities.EditorState{
		Filename:       s.filename,
		Template:       s.doc.Template(),
		Locales:        s.doc.Locales(),
		Placeholders:   s.doc.Placeholders(),
		View:           s.view,
		Dirty:          s.dirty,
		JustLoaded:     s.justLoaded,
		UnsavedChanges: s.unsaved(),
		Order:          s.doc.SubstitutionOrder(),
	}
	if s.previewLocale != nil {
		l := *s.previewLocale
		state.PreviewLocale = &l
	}
	return state
}
