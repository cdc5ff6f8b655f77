package pg

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
)

type GenreReader struct {
	pool *ConnectionPool
}

func NewGenreReader(pool *ConnectionPool) *GenreReader {
	return &GenreReader{pool: pool}
}

func (r *GenreReader) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	queryCtx, cancel := r.pool.newQueryCtx(ctx)
	defer cancel()

	records, err := queryRecords(queryCtx, r.pool.GetConn(), "SELECT * FROM "+genresTable+" ORDER BY id ASC", nil)
	if err != nil {
		return nil, err
	}

	genres := make([]domain.Genre, 0, len(records))
	for _, rec := range records {
		g, err := domain.NewGenre(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to map genre row: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, nil
}

var _ storage.GenreReader = (*GenreReader)(nil)
