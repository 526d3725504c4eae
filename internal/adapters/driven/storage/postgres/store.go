// Package postgres provides a PostgreSQL implementation of driven.IndexStore.
//
// Vectors are stored in a pgvector column so the snapshot can be inspected
// and queried with the database's own distance operators. The column is
// declared without a dimension because the embedding model (and with it the
// vector size) can change between builds.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

const schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS grokpedia_index_meta (
    id              INTEGER PRIMARY KEY CHECK (id = 1),
    version         BIGINT      NOT NULL,
    indexed_version BIGINT      NOT NULL,
    model           TEXT        NOT NULL DEFAULT '',
    dimensions      INTEGER     NOT NULL DEFAULT 0,
    built_at        TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS grokpedia_entries (
    position       INTEGER PRIMARY KEY,
    chunk_id       TEXT    NOT NULL,
    text           TEXT    NOT NULL,
    source         TEXT    NOT NULL,
    root           TEXT    NOT NULL,
    item_id        TEXT    NOT NULL,
    chunk_position INTEGER NOT NULL,
    embedding      vector
);

CREATE INDEX IF NOT EXISTS grokpedia_entries_root_idx ON grokpedia_entries (root);
`

// Store persists index snapshots in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database and creates the schema if needed.
func NewStore(ctx context.Context, connString string) (*Store, error) {
	if connString == "" {
		return nil, fmt.Errorf("%w: empty database url", domain.ErrInvalidInput)
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Save replaces the stored snapshot with ix in one transaction.
func (s *Store) Save(ctx context.Context, ix *domain.Index) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM grokpedia_entries`); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	var builtAt any
	if !ix.BuiltAt.IsZero() {
		builtAt = ix.BuiltAt
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO grokpedia_index_meta (id, version, indexed_version, model, dimensions, built_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			version = EXCLUDED.version,
			indexed_version = EXCLUDED.indexed_version,
			model = EXCLUDED.model,
			dimensions = EXCLUDED.dimensions,
			built_at = EXCLUDED.built_at`,
		int64(ix.Version), int64(ix.IndexedVersion), ix.Model, ix.Dimensions, builtAt)
	if err != nil {
		return fmt.Errorf("saving index meta: %w", err)
	}

	batch := &pgx.Batch{}
	for i, e := range ix.Entries {
		var embedding any
		if e.HasVector() {
			embedding = pgvector.NewVector(e.Vector)
		}
		c := e.Chunk
		batch.Queue(`
			INSERT INTO grokpedia_entries (position, chunk_id, text, source, root, item_id, chunk_position, embedding)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			i, c.ID, c.Text, c.Source, c.Root, c.ItemID, c.Position, embedding)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("saving entries: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. Returns domain.ErrNotFound if none was saved.
func (s *Store) Load(ctx context.Context) (*domain.Index, error) {
	ix := domain.NewIndex()

	var version, indexedVersion int64
	var builtAt *time.Time
	err := s.pool.QueryRow(ctx, `
		SELECT version, indexed_version, model, dimensions, built_at
		FROM grokpedia_index_meta WHERE id = 1`,
	).Scan(&version, &indexedVersion, &ix.Model, &ix.Dimensions, &builtAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading index meta: %w", err)
	}
	ix.Version = uint64(version)
	ix.IndexedVersion = uint64(indexedVersion)
	if builtAt != nil {
		ix.BuiltAt = builtAt.UTC()
	}

	rows, err := s.pool.Query(ctx, `
		SELECT chunk_id, text, source, root, item_id, chunk_position, embedding::text
		FROM grokpedia_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.IndexEntry
		var embedding *string
		if err := rows.Scan(&e.Chunk.ID, &e.Chunk.Text, &e.Chunk.Source, &e.Chunk.Root,
			&e.Chunk.ItemID, &e.Chunk.Position, &embedding); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if embedding != nil {
			var v pgvector.Vector
			if err := v.Scan(*embedding); err != nil {
				return nil, fmt.Errorf("parsing embedding of %s: %w", e.Chunk.ID, err)
			}
			e.Vector = v.Slice()
		}
		ix.Entries = append(ix.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return ix, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
