package search

import (
	"context"

	"github.com/DjordjeVuckovic/story-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
)

// GenreLister returns the whole genre catalog.
type GenreLister struct {
	reader storage.GenreReader
}

func NewGenreLister(reader storage.GenreReader) *GenreLister {
	return &GenreLister{reader: reader}
}

func (l *GenreLister) List(ctx context.Context) ([]domain.Genre, error) {
	genres, err := l.reader.ListGenres(ctx)
	if err != nil {
		return nil, apperr.NewGenresQueryFailed(err)
	}
	if genres == nil {
		genres = []domain.Genre{}
	}
	return genres, nil
}
