package in_mem

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
)

// Store keeps the catalog in memory and evaluates predicates and rankings in Go.
// A search session holds the read lock, so fetch and count see the same snapshot.
type Store struct {
	storageLock sync.RWMutex
	stories     map[int64]domain.Story
	genres      map[int64]domain.Genre
}

func NewStore() *Store {
	return &Store{
		stories: make(map[int64]domain.Story),
		genres:  make(map[int64]domain.Genre),
	}
}

// NewStoreFromCatalog returns a store preloaded with catalog.
func NewStoreFromCatalog(catalog domain.Catalog) *Store {
	s := NewStore()
	s.put(catalog)
	return s
}

func (s *Store) SaveCatalog(ctx context.Context, catalog domain.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	s.put(catalog)
	slog.Info("Catalog saved to in-memory storage", "genres", len(catalog.Genres), "stories", len(catalog.Stories))
	return nil
}

func (s *Store) put(catalog domain.Catalog) {
	for _, g := range catalog.Genres {
		s.genres[g.ID] = g
	}
	for _, st := range catalog.Stories {
		st.Relevance = 0
		s.stories[st.ID] = st
	}
}

func (s *Store) Session(ctx context.Context, fn func(storage.StorySession) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	return fn(&session{store: s})
}

func (s *Store) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	genres := make([]domain.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		g.Attributes = maps.Clone(g.Attributes)
		genres = append(genres, g)
	}
	slices.SortFunc(genres, func(a, b domain.Genre) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return genres, nil
}

func (s *Store) Healthy(ctx context.Context) bool {
	return true
}

type session struct {
	store *Store
}

func (ss *session) FetchPage(ctx context.Context, filter query.Predicate, ranking query.Ranking, page query.Page) ([]domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := ss.match(filter)
	for i := range matched {
		matched[i].Relevance = ranking.Rank(matched[i].Title)
	}
	slices.SortFunc(matched, func(a, b domain.Story) int {
		return ranking.Compare(a.Relevance, a.ID, b.Relevance, b.ID)
	})

	if page.Limit <= 0 || page.Offset >= int64(len(matched)) {
		return []domain.Story{}, nil
	}
	start := int(page.Offset)
	end := min(start+page.Limit, len(matched))
	if end < start {
		end = len(matched)
	}

	out := make([]domain.Story, 0, end-start)
	for _, st := range matched[start:end] {
		st.Attributes = maps.Clone(st.Attributes)
		out = append(out, st)
	}
	return out, nil
}

func (ss *session) Count(ctx context.Context, filter query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(ss.match(filter))), nil
}

func (ss *session) match(filter query.Predicate) []domain.Story {
	var matched []domain.Story
	for _, st := range ss.store.stories {
		if query.Eval(filter, st.Title, st.GenreID) {
			matched = append(matched, st)
		}
	}
	return matched
}

var (
	_ storage.StoryReader   = (*Store)(nil)
	_ storage.GenreReader   = (*Store)(nil)
	_ storage.Indexer       = (*Store)(nil)
	_ storage.HealthChecker = (*Store)(nil)
)
