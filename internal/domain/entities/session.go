package entities

// View is the editor tab currently shown.
type View string

const (
	ViewSettings View = "settings"
	ViewPreview  View = "preview"
)

func (v View) Valid() bool {
	return v == ViewSettings || v == ViewPreview
}

// Preview is the rendered template for the selected locale. A nil Locale
// means the raw template is shown.
type Preview struct {
	Locale *LocaleID
	Source string
}

// SavedFile is the result of a save: the download name and the encoded file.
// Stored is false when the template store refused or failed the write; the
// file is still handed to the user.
type SavedFile struct {
	Filename string
	Data     []byte
	Stored   bool
}

// EditorState is a read-only snapshot of an editing session.
type EditorState struct {
	Filename       string
	Template       string
	Locales        []LocaleID
	Placeholders   []Placeholder
	View           View
	PreviewLocale  *LocaleID
	Dirty          bool
	JustLoaded     bool
	UnsavedChanges bool
	Order          SubstitutionOrder
}
