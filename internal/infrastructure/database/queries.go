package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Queries holds the SQL used by TemplateRepository.
type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

type EmailTemplate struct {
	Name      string
	Document  string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type EmailTemplateSummary struct {
	Name      string
	Size      int64
	UpdatedAt pgtype.Timestamptz
}

const upsertTemplate = `
INSERT INTO email_templates (name, document)
VALUES ($1, $2::json)
ON CONFLICT (name) DO UPDATE
SET document = EXCLUDED.document, updated_at = now()
RETURNING name, document::text, created_at, updated_at`

func (q *Queries) UpsertTemplate(ctx context.Context, name string, document string) (EmailTemplate, error) {
	var t EmailTemplate
	err := q.db.QueryRow(ctx, upsertTemplate, name, document).
		Scan(&t.Name, &t.Document, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const getTemplateByName = `
SELECT name, document::text, created_at, updated_at
FROM email_templates
WHERE name = $1`

func (q *Queries) GetTemplateByName(ctx context.Context, name string) (EmailTemplate, error) {
	var t EmailTemplate
	err := q.db.QueryRow(ctx, getTemplateByName, name).
		Scan(&t.Name, &t.Document, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const listTemplates = `
SELECT name, octet_length(document::text), updated_at
FROM email_templates
ORDER BY name`

func (q *Queries) ListTemplates(ctx context.Context) ([]EmailTemplateSummary, error) {
	rows, err := q.db.Query(ctx, listTemplates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EmailTemplateSummary
	for rows.Next() {
		var i EmailTemplateSummary
		var size int32
		if err := rows.Scan(&i.Name, &size, &i.UpdatedAt); err != nil {
			return nil, err
		}
		i.Size = int64(size)
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteTemplate = `DELETE FROM email_templates WHERE name = $1`

func (q *Queries) DeleteTemplate(ctx context.Context, name string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteTemplate, name)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
