package domain

import "errors"

// Domain errors.
var (
	ErrMalformedInput      = errors.New("fichier de template invalide")
	ErrMissingTemplate     = errors.New("le champ \"template\" est requis")
	ErrActionNotConfirmed  = errors.New("action non confirmée")
	ErrPlaceholderNotFound = errors.New("placeholder non trouvé")
	ErrInvalidLocale       = errors.New("locale invalide")
	ErrTemplateNotFound    = errors.New("template non trouvé")
	ErrInvalidView         = errors.New("vue inconnue")
	ErrInvalidTemplateName = errors.New("nom de template invalide")
)

var codes = []struct {
	err  error
	code string
}{
	// ErrMissingTemplate is always wrapped together with ErrMalformedInput,
	// so it has to be matched first.
	{ErrMissingTemplate, "missing_template"},
	{ErrMalformedInput, "malformed_input"},
	{ErrActionNotConfirmed, "action_not_confirmed"},
	{ErrPlaceholderNotFound, "placeholder_not_found"},
	{ErrInvalidLocale, "invalid_locale"},
	{ErrTemplateNotFound, "template_not_found"},
	{ErrInvalidView, "invalid_view"},
	{ErrInvalidTemplateName, "invalid_template_name"},
}

// Code returns the stable identifier of the domain error wrapped in err, or ""
// when err does not carry one.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// ConfirmationError reports a destructive action the user has not confirmed.
// Prompt is the message key adapters show to ask for confirmation.
type ConfirmationError struct {
	Action string
	Prompt string
}

func (e *ConfirmationError) Error() string {
	return ErrActionNotConfirmed.Error() + ": " + e.Action
}

func (e *ConfirmationError) Unwrap() error {
	return ErrActionNotConfirmed
}
