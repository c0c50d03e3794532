package output

import (
	"context"

	"mailtmpl/internal/domain/entities"
)

//go:generate mockgen -source=$GOFILE -package mock_output -destination=mock/$GOFILE

// TemplateStore keeps encoded template files by name (file name without
// extension). Load and Delete return domain.ErrTemplateNotFound for unknown names.
type TemplateStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]entities.StoredTemplate, error)
	Delete(ctx context.Context, name string) error
}
