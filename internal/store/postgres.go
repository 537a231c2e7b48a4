package store

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres persists one jsonb document per path in the documents table.
// Collection reads assemble the direct and nested children of the path.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Get(ctx context.Context, path string) (map[string]any, error) {
	key := strings.Join(splitPath(path), "/")

	var doc map[string]any
	err := p.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE path = $1`, key,
	).Scan(&doc)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	rows, err := p.pool.Query(ctx,
		`SELECT path, doc FROM documents WHERE path LIKE $1`, key+"/%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tree := make(map[string]any)
	for rows.Next() {
		var childPath string
		var childDoc map[string]any
		if err := rows.Scan(&childPath, &childDoc); err != nil {
			return nil, err
		}
		insertAt(tree, splitPath(strings.TrimPrefix(childPath, key+"/")), childDoc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tree) == 0 {
		return nil, nil
	}
	return tree, nil
}

func (p *Postgres) Set(ctx context.Context, path string, value map[string]any) error {
	key := strings.Join(splitPath(path), "/")
	if key == "" {
		return errors.New("cannot set store root")
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// A set replaces the whole subtree at the path.
	if _, err := tx.Exec(ctx,
		`DELETE FROM documents WHERE path = $1 OR path LIKE $2`, key, key+"/%",
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO documents (path, doc) VALUES ($1, $2)`, key, value,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (p *Postgres) Update(ctx context.Context, path string, fields map[string]any) error {
	key := strings.Join(splitPath(path), "/")
	if key == "" {
		return errors.New("cannot update store root")
	}

	_, err := p.pool.Exec(ctx, `
		INSERT INTO documents (path, doc) VALUES ($1, $2)
		ON CONFLICT (path) DO UPDATE SET doc = documents.doc || EXCLUDED.doc`,
		key, fields,
	)
	return err
}

func (p *Postgres) Delete(ctx context.Context, path string) error {
	key := strings.Join(splitPath(path), "/")
	if key == "" {
		return errors.New("cannot delete store root")
	}

	_, err := p.pool.Exec(ctx,
		`DELETE FROM documents WHERE path = $1 OR path LIKE $2`, key, key+"/%",
	)
	return err
}

func insertAt(tree map[string]any, parts []string, doc map[string]any) {
	for _, key := range parts[:len(parts)-1] {
		child, ok := tree[key].(map[string]any)
		if !ok {
			child = make(map[string]any)
			tree[key] = child
		}
		tree = child
	}
	tree[parts[len(parts)-1]] = doc
}
