// Package codec reads and writes the JSON template file:
//
//	{
//	  "template": "<html with $$placeholder$$ tokens>",
//	  "placeholders": {
//	    "$$placeholder$$": { "fr": "...", "en": "..." }
//	  }
//	}
//
// Object keys are written and read in document order.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"mailtmpl/internal/domain"
	"mailtmpl/internal/domain/entities"
)

// DefaultFilename is used when no file name is known.
const DefaultFilename = "template"

// Extension of saved template files.
const Extension = ".json"

// ValidationError lists the schema violations of a rejected file.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("%v: %s", domain.ErrMalformedInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrMalformedInput
}

// Encode serializes doc with two-space indentation. Placeholders sharing a
// name collapse into one key: the key keeps the position of the first row
// and the translations of the last one.
func Encode(doc *entities.Document) ([]byte, error) {
	locales := doc.Locales()

	var names []string
	rows := map[string]entities.Placeholder{}
	for _, p := range doc.Placeholders() {
		if _, seen := rows[p.Name]; !seen {
			names = append(names, p.Name)
		}
		rows[p.Name] = p
	}

	var buf bytes.Buffer
	buf.WriteString(`{"template":`)
	if err := writeString(&buf, doc.Template()); err != nil {
		return nil, err
	}
	buf.WriteString(`,"placeholders":{`)
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteString(`:{`)
		first := true
		for _, l := range locales {
			text, ok := rows[name].Translation(l)
			if !ok {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeString(&buf, string(l)); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeString(&buf, text); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteString(`}}`)

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent document: %w", err)
	}
	return out.Bytes(), nil
}

// writeString writes s as a JSON string without HTML escaping; templates are
// HTML and must stay readable in the saved file.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode string: %w", err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

type translation struct {
	locale string
	text   string
}

type row struct {
	name         string
	translations []translation
}

// Decode parses a template file into a new document. Any failure wraps
// domain.ErrMalformedInput; a missing "template" field also wraps
// domain.ErrMissingTemplate.
//
// Blank locale keys are skipped. Keys with surrounding whitespace are
// rejected rather than merged with their trimmed form.
func Decode(data []byte) (*entities.Document, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	if root, ok := generic.(map[string]any); ok {
		if _, ok := root["template"]; !ok {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedInput, domain.ErrMissingTemplate)
		}
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile template schema: %w", err)
	}
	if err := sch.Validate(generic); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return nil, &ValidationError{Issues: collectIssues(verr)}
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	template, rows, err := decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	doc := entities.NewDocument()
	doc.SetTemplate(template)
	for _, r := range rows {
		id := doc.AddPlaceholder(r.name)
		for _, t := range r.translations {
			if strings.TrimSpace(t.locale) == "" {
				continue
			}
			if string(entities.NormalizeLocale(t.locale)) != t.locale {
				return nil, fmt.Errorf("%w: placeholder %q: locale %q: %w",
					domain.ErrMalformedInput, r.name, t.locale, domain.ErrInvalidLocale)
			}
			if err := doc.SetTranslation(id, t.locale, t.text); err != nil {
				return nil, fmt.Errorf("%w: placeholder %q: %w", domain.ErrMalformedInput, r.name, err)
			}
		}
	}
	return doc, nil
}

// decodeOrdered walks the token stream so that placeholder and locale keys
// keep their file order. Repeated keys keep their first position and take
// the last value.
func decodeOrdered(data []byte) (string, []row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return "", nil, err
	}

	var (
		template string
		rows     []row
	)
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return "", nil, err
		}
		switch key {
		case "template":
			if err := dec.Decode(&template); err != nil {
				return "", nil, fmt.Errorf("template: %w", err)
			}
		case "placeholders":
			rows, err = decodePlaceholders(dec)
			if err != nil {
				return "", nil, err
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return "", nil, fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	return template, rows, expectDelim(dec, '}')
}

func decodePlaceholders(dec *json.Decoder) ([]row, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("placeholders: %w", err)
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("placeholders: expected object, got %v", tok)
	}

	var rows []row
	index := map[string]int{}
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		translations, err := decodeTranslations(dec, name)
		if err != nil {
			return nil, err
		}
		if i, seen := index[name]; seen {
			rows[i].translations = translations
			continue
		}
		index[name] = len(rows)
		rows = append(rows, row{name: name, translations: translations})
	}
	return rows, expectDelim(dec, '}')
}

func decodeTranslations(dec *json.Decoder, name string) ([]translation, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("placeholder %q: %w", name, err)
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("placeholder %q: expected object, got %v", name, tok)
	}

	var out []translation
	index := map[string]int{}
	for dec.More() {
		locale, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return nil, fmt.Errorf("placeholder %q locale %q: %w", name, locale, err)
		}
		if i, seen := index[locale]; seen {
			out[i].text = text
			continue
		}
		index[locale] = len(out)
		out = append(out, translation{locale: locale, text: text})
	}
	return out, expectDelim(dec, '}')
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// FilenameFromPath returns the trimmed base name of a file path without its
// extension, or DefaultFilename when nothing is left.
func FilenameFromPath(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		return DefaultFilename
	}
	stem := strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
	if stem == "" {
		return DefaultFilename
	}
	return stem
}
