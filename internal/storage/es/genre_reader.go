package es

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

type GenreReader struct {
	client    *Client
	batchSize int
}

func NewGenreReader(client *Client) *GenreReader {
	return &GenreReader{client: client, batchSize: pagination.PageMaxSize}
}

// ListGenres returns every genre ordered by id, walking the index in batches
// with search_after on the id sort.
func (r *GenreReader) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	asc := sortorder.Asc
	genres := make([]domain.Genre, 0)

	var after []types.FieldValue
	for {
		req := r.client.es.Search().
			Index(r.client.genreIndex).
			Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
			Size(r.batchSize).
			Sort(&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					domain.GenreFieldID: {Order: &asc},
				},
			})
		if after != nil {
			req = req.SearchAfter(after...)
		}

		res, err := req.Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list genres: %w", err)
		}

		for _, hit := range res.Hits.Hits {
			rec, err := decodeRecord(hit.Source_)
			if err != nil {
				return nil, err
			}
			g, err := domain.NewGenre(rec)
			if err != nil {
				return nil, fmt.Errorf("failed to map genre document: %w", err)
			}
			genres = append(genres, g)
		}

		hits := res.Hits.Hits
		if len(hits) < r.batchSize || len(hits[len(hits)-1].Sort) == 0 {
			break
		}
		after = hits[len(hits)-1].Sort
	}

	slog.Debug("Listed es genres", "count", len(genres))
	return genres, nil
}

var _ storage.GenreReader = (*GenreReader)(nil)
