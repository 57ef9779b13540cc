package pagestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
)

const pagesSchemaSQL = `
CREATE TABLE IF NOT EXISTS studyverse_pages (
    id         TEXT PRIMARY KEY,
    content    JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres wraps an existing pool.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// ConnectPostgres opens a pool for url and makes sure the table exists.
func ConnectPostgres(ctx context.Context, url string) (*Postgres, error) {
	const op = "pagestore.ConnectPostgres"
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, diagerr.Persistence(op, fmt.Errorf("connect: %w", err))
	}
	p := NewPostgres(pool)
	if err := p.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// CreateSchema creates the pages table if it does not exist.
func (p *Postgres) CreateSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, pagesSchemaSQL); err != nil {
		return diagerr.Persistence("pagestore.Postgres.CreateSchema", err)
	}
	return nil
}

// Save implements Store with an upsert.
func (p *Postgres) Save(ctx context.Context, pageID string, content []byte) error {
	const op = "pagestore.Postgres.Save"
	if err := checkPageID(op, pageID); err != nil {
		return err
	}
	_, err := p.db.Exec(ctx,
		`INSERT INTO studyverse_pages (id, content, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`,
		pageID, string(content),
	)
	if err != nil {
		return diagerr.Persistence(op, fmt.Errorf("upsert page %q: %w", pageID, err))
	}
	return nil
}

// Load implements Store.
func (p *Postgres) Load(ctx context.Context, pageID string) (*Page, error) {
	var (
		page    Page
		content string
	)
	err := p.db.QueryRow(ctx,
		`SELECT id, content::text, updated_at FROM studyverse_pages WHERE id = $1`, pageID,
	).Scan(&page.ID, &content, &page.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, diagerr.Persistence("pagestore.Postgres.Load", fmt.Errorf("get page %q: %w", pageID, err))
	}
	page.Content = []byte(content)
	return &page, nil
}

// Delete removes a page. Missing pages are not an error.
func (p *Postgres) Delete(ctx context.Context, pageID string) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM studyverse_pages WHERE id = $1`, pageID); err != nil {
		return diagerr.Persistence("pagestore.Postgres.Delete", err)
	}
	return nil
}

// Close closes the pool.
func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
