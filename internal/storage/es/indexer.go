package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

type Indexer struct {
	client       *Client
	indexBuilder *IndexBuilder
}

func NewIndexer(ctx context.Context, client *Client) (*Indexer, error) {
	indexer := &Indexer{
		client:       client,
		indexBuilder: NewIndexBuilder(),
	}

	if err := indexer.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes exist: %w", err)
	}

	return indexer, nil
}

// SaveCatalog bulk indexes genres and stories keyed by id, then refreshes both
// indexes so the catalog is searchable on return.
func (e *Indexer) SaveCatalog(ctx context.Context, catalog domain.Catalog) error {
	genres := make([]bulkDoc, 0, len(catalog.Genres))
	for _, g := range catalog.Genres {
		genres = append(genres, bulkDoc{id: g.ID, body: g.Record()})
	}
	stories := make([]bulkDoc, 0, len(catalog.Stories))
	for _, s := range catalog.Stories {
		stories = append(stories, bulkDoc{id: s.ID, body: s.Record()})
	}

	if err := e.bulkIndex(ctx, e.client.genreIndex, genres); err != nil {
		return err
	}
	if err := e.bulkIndex(ctx, e.client.storyIndex, stories); err != nil {
		return err
	}

	if _, err := e.client.es.Indices.Refresh().Index(e.client.genreIndex + "," + e.client.storyIndex).Do(ctx); err != nil {
		return fmt.Errorf("failed to refresh indexes: %w", err)
	}
	return nil
}

type bulkDoc struct {
	id   int64
	body domain.Record
}

func (e *Indexer) bulkIndex(ctx context.Context, index string, docs []bulkDoc) error {
	if len(docs) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         index,
		Client:        e.client.es,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed atomic.Int64

	for _, doc := range docs {
		id := strconv.FormatInt(doc.id, 10)

		docBytes, err := json.Marshal(doc.body)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", id)
			failed.Add(1)
			continue
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: id,
				Body:       bytes.NewReader(docBytes),
				OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
					successful.Add(1)
				},
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					failed.Add(1)
					if err != nil {
						slog.Error("bulk index error", "error", err, "id", item.DocumentID)
					} else {
						slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
					}
				},
			},
		)
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add document to bulk indexer", "error", err, "id", id)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Bulk indexing completed",
		"successful", successful.Load(),
		"failed", failed.Load(),
		"total", len(docs),
		"index", index)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d out of %d documents into %s", n, len(docs), index)
	}
	return nil
}

func (e *Indexer) EnsureIndexes(ctx context.Context) error {
	if err := e.ensureIndex(ctx, e.client.genreIndex, e.indexBuilder.buildGenreMapping()); err != nil {
		return err
	}
	return e.ensureIndex(ctx, e.client.storyIndex, e.indexBuilder.buildStoryMapping())
}

func (e *Indexer) ensureIndex(ctx context.Context, index string, mappings types.TypeMapping) error {
	existsRes, err := e.client.es.Indices.Exists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", index)
		return nil
	}

	settings := e.indexBuilder.buildSettings()

	createRes, err := e.client.es.Indices.Create(index).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", index)
	return nil
}

var _ storage.Indexer = (*Indexer)(nil)
