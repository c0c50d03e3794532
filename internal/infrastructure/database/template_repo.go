package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"mailtmpl/internal/domain"
	"mailtmpl/internal/domain/entities"
	"mailtmpl/internal/ports/output"
)

var _ output.TemplateStore = (*TemplateRepository)(nil)

// TemplateRepository implements output.TemplateStore on PostgreSQL.
type TemplateRepository struct {
	q *Queries
}

func NewTemplateRepository(q *Queries) *TemplateRepository {
	return &TemplateRepository{q: q}
}

func (r *TemplateRepository) Save(ctx context.Context, name string, data []byte) error {
	if _, err := r.q.UpsertTemplate(ctx, name, string(data)); err != nil {
		return fmt.Errorf("upsert template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) Load(ctx context.Context, name string) ([]byte, error) {
	row, err := r.q.GetTemplateByName(ctx, name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("template %q: %w", name, domain.ErrTemplateNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get template by name: %w", err)
	}
	return []byte(row.Document), nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]entities.StoredTemplate, error) {
	rows, err := r.q.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := make([]entities.StoredTemplate, len(rows))
	for i := range rows {
		out[i] = entities.StoredTemplate{
			Name:      rows[i].Name,
			Size:      rows[i].Size,
			UpdatedAt: pgtypeTimestamptzToTime(rows[i].UpdatedAt),
		}
	}
	return out, nil
}

func (r *TemplateRepository) Delete(ctx context.Context, name string) error {
	n, err := r.q.DeleteTemplate(ctx, name)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("template %q: %w", name, domain.ErrTemplateNotFound)
	}
	return nil
}
