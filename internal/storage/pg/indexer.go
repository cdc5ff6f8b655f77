package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/jackc/pgx/v5"
)

const (
	upsertGenreSQL = `
		INSERT INTO genres (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description`

	upsertStorySQL = `
		INSERT INTO stories (id, title, genre_id, author, description, cover_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			genre_id = EXCLUDED.genre_id,
			author = EXCLUDED.author,
			description = EXCLUDED.description,
			cover_url = EXCLUDED.cover_url`

	syncSequenceSQL = `SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 1))`
)

type Indexer struct {
	pool *ConnectionPool
}

func NewIndexer(pool *ConnectionPool) *Indexer {
	return &Indexer{pool: pool}
}

// SaveCatalog upserts genres then stories in one transaction and moves the id
// sequences past the loaded ids.
func (s *Indexer) SaveCatalog(ctx context.Context, catalog domain.Catalog) error {
	tx, err := s.pool.GetConn().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, g := range catalog.Genres {
		batch.Queue(upsertGenreSQL, g.ID, g.Name, attr(g.Attributes, "description"))
	}
	for _, st := range catalog.Stories {
		batch.Queue(upsertStorySQL,
			st.ID,
			st.Title,
			st.GenreID,
			attr(st.Attributes, "author"),
			attr(st.Attributes, "description"),
			attr(st.Attributes, "cover_url"),
		)
	}
	batch.Queue(fmt.Sprintf(syncSequenceSQL, genresTable))
	batch.Queue(fmt.Sprintf(syncSequenceSQL, storiesTable))

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to upsert catalog row %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	slog.Info("Catalog saved to PostgreSQL", "genres", len(catalog.Genres), "stories", len(catalog.Stories))
	return nil
}

// attr returns a string attribute or nil, which pgx writes as NULL.
func attr(attrs map[string]any, key string) any {
	v, ok := attrs[key]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

var _ storage.Indexer = (*Indexer)(nil)
