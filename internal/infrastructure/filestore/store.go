// Package filestore keeps template files as <name>.json in a directory. It is
// the TemplateStore used when no database is configured.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mailtmpl/internal/domain"
	"mailtmpl/internal/domain/entities"
	"mailtmpl/internal/infrastructure/codec"
	"mailtmpl/internal/ports/output"
)

var _ output.TemplateStore = (*Store)(nil)

type Store struct {
	dir string
}

// New creates dir if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create templates dir: %w", err)
	}
	log.Printf("✅ Templates stockés dans %s", dir)
	return &Store{dir: dir}, nil
}

// path maps a template name to its file. Names starting with a dot are
// refused: List skips dot files, so they could never be found again.
func (s *Store) path(name string) (string, error) {
	if name == "" || name != strings.TrimSpace(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%q: %w", name, domain.ErrInvalidTemplateName)
	}
	return filepath.Join(s.dir, name+codec.Extension), nil
}

// Save writes through a temporary file so a crash never leaves half a template.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write template: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close template: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename template: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("template %q: %w", name, domain.ErrTemplateNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return data, nil
}

// List returns the stored templates sorted by name.
func (s *Store) List(ctx context.Context) ([]entities.StoredTemplate, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read templates dir: %w", err)
	}
	var out []entities.StoredTemplate
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != codec.Extension {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, entities.StoredTemplate{
			Name:      strings.TrimSuffix(e.Name(), codec.Extension),
			Size:      info.Size(),
			UpdatedAt: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("template %q: %w", name, domain.ErrTemplateNotFound)
	}
	if err != nil {
		return fmt.Errorf("remove template: %w", err)
	}
	return nil
}
