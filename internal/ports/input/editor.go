package input

import (
	"context"
	"io"

	"mailtmpl/internal/domain/entities"
)

// EditorUseCase is the command surface of the template editor. Commands that
// discard state take confirmed; without it they fail with a
// *domain.ConfirmationError and change nothing.
type EditorUseCase interface {
	NewTemplate(ctx context.Context, confirmed bool) error
	Load(ctx context.Context, filename string, r io.Reader, confirmed bool) error
	LoadStored(ctx context.Context, name string, confirmed bool) error
	Save(ctx context.Context) (entities.SavedFile, error)
	ListStored(ctx context.Context) ([]entities.StoredTemplate, error)
	DeleteStored(ctx context.Context, name string, confirmed bool) error
	SetFilename(ctx context.Context, name string) error

	EditTemplate(ctx context.Context, text string) error
	AddPlaceholder(ctx context.Context, name string) (entities.PlaceholderID, error)
	RenamePlaceholder(ctx context.Context, id entities.PlaceholderID, name string) error
	DeletePlaceholder(ctx context.Context, id entities.PlaceholderID, confirmed bool) error
	AddLocale(ctx context.Context, code string) (entities.LocaleID, error)
	RemoveLocale(ctx context.Context, code string) error
	SetTranslation(ctx context.Context, id entities.PlaceholderID, locale, text string) error

	SwitchView(ctx context.Context, view entities.View) (entities.Preview, error)
	SelectPreviewLocale(ctx context.Context, code string) (entities.Preview, error)
	Preview(ctx context.Context) entities.Preview
	Render(ctx context.Context, locale string) string
	Snapshot(ctx context.Context) entities.EditorState
}
