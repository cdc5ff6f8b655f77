package storage

import (
	"context"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
	"github.com/DjordjeVuckovic/story-hunter/pkg/server"
)

// StoryReader hands out scoped read sessions over the story table.
type StoryReader interface {
	// Session runs fn against one storage session (a pooled connection, a read
	// lock, ...). Resources behind the session are released when fn returns,
	// whether or not it failed.
	Session(ctx context.Context, fn func(StorySession) error) error
}

// StorySession is a consistent view used for the page fetch and its count.
type StorySession interface {
	// FetchPage returns at most page.Limit stories matching filter, ordered by
	// ranking, skipping page.Offset rows. Relevance is set on every story.
	FetchPage(ctx context.Context, filter query.Predicate, ranking query.Ranking, page query.Page) ([]domain.Story, error)
	// Count returns the number of stories matching filter.
	Count(ctx context.Context, filter query.Predicate) (int64, error)
}

// GenreReader lists the genre catalog.
type GenreReader interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)
}

// HealthChecker reports whether the backend is reachable.
type HealthChecker = server.HealthChecker
