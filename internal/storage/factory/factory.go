package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/story-hunter/internal/reader"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/pg"
)

// Backend is everything the service and the CLI need from one storage type.
type Backend struct {
	Type    storage.Type
	Stories storage.StoryReader
	Genres  storage.GenreReader
	Indexer storage.Indexer
	Health  storage.HealthChecker

	close func()
}

// Close releases backend resources such as the PostgreSQL pool.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// NewBackend wires the readers, indexer and health checker of the configured storage type.
func NewBackend(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		return &Backend{
			Type:    storage.PG,
			Stories: pg.NewStoryReader(pool),
			Genres:  pg.NewGenreReader(pool),
			Indexer: pg.NewIndexer(pool),
			Health:  pg.NewHealthChecker(pool),
			close:   pool.Close,
		}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}

		client, err := es.NewClient(*cfg.Es)
		if err != nil {
			return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
		}
		indexer, err := es.NewIndexer(ctx, client)
		if err != nil {
			return nil, err
		}

		return &Backend{
			Type:    storage.ES,
			Stories: es.NewStoryReader(client),
			Genres:  es.NewGenreReader(client),
			Indexer: indexer,
			Health:  es.NewHealthChecker(client),
		}, nil

	case storage.InMem:
		store := in_mem.NewStore()
		if cfg.InMem != nil && cfg.InMem.CatalogPath != "" {
			catalog, err := reader.LoadCatalogFile(cfg.InMem.CatalogPath, true)
			if err != nil {
				return nil, fmt.Errorf("failed to load in-memory catalog: %w", err)
			}
			if err := store.SaveCatalog(ctx, *catalog); err != nil {
				return nil, err
			}
			slog.Info("In-memory catalog loaded",
				"path", cfg.InMem.CatalogPath,
				"genres", len(catalog.Genres),
				"stories", len(catalog.Stories))
		}

		return &Backend{
			Type:    storage.InMem,
			Stories: store,
			Genres:  store,
			Indexer: store,
			Health:  store,
		}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
