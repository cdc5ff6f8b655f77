package in_mem

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genre(id int64) *int64 { return &id }

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Genres: []domain.Genre{{ID: 2, Name: "Drama"}, {ID: 1, Name: "Fantasy"}},
		Stories: []domain.Story{
			{ID: 3, Title: "Blue Red", GenreID: genre(1)},
			{ID: 1, Title: "Red Sky", GenreID: genre(1), Attributes: map[string]any{"author": "A"}},
			{ID: 2, Title: "Redemption", GenreID: genre(2)},
			{ID: 4, Title: "Green", GenreID: nil},
		},
	}
}

func fetch(t *testing.T, s *Store, filter query.Predicate, term string, page query.Page) ([]domain.Story, int64) {
	t.Helper()
	var (
		stories []domain.Story
		count   int64
	)
	err := s.Session(context.Background(), func(ss storage.StorySession) error {
		var err error
		stories, err = ss.FetchPage(context.Background(), filter, query.NewRanking(term), page)
		if err != nil {
			return err
		}
		count, err = ss.Count(context.Background(), filter)
		return err
	})
	require.NoError(t, err)
	return stories, count
}

func ids(stories []domain.Story) []int64 {
	out := make([]int64, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.ID)
	}
	return out
}

func TestStore_FetchPage_RanksAndPaginates(t *testing.T) {
	s := NewStoreFromCatalog(testCatalog())
	filter := query.StoryFilter("red", query.GenreSet{})

	first, count := fetch(t, s, filter, "red", query.Page{Limit: 2, Offset: 0})
	assert.Equal(t, []int64{1, 2}, ids(first))
	assert.Equal(t, 3, first[0].Relevance)
	assert.Equal(t, int64(3), count)

	second, _ := fetch(t, s, filter, "red", query.Page{Limit: 2, Offset: 2})
	assert.Equal(t, []int64{3}, ids(second))
	assert.Equal(t, 2, second[0].Relevance)

	past, _ := fetch(t, s, filter, "red", query.Page{Limit: 2, Offset: 10})
	assert.NotNil(t, past)
	assert.Empty(t, past)
}

func TestStore_FetchPage_GenreFilter(t *testing.T) {
	s := NewStoreFromCatalog(testCatalog())
	filter := query.StoryFilter("", query.NewGenreSet(1))

	stories, count := fetch(t, s, filter, "", query.Page{Limit: 10})
	assert.Equal(t, []int64{1, 3}, ids(stories))
	assert.Equal(t, int64(2), count)
}

func TestStore_FetchPage_NullGenreIncludedWithoutFilter(t *testing.T) {
	s := NewStoreFromCatalog(testCatalog())

	_, count := fetch(t, s, query.StoryFilter("", query.GenreSet{}), "", query.Page{Limit: 10})
	assert.Equal(t, int64(4), count)
}

func TestStore_FetchPage_DoesNotLeakAttributeMaps(t *testing.T) {
	s := NewStoreFromCatalog(testCatalog())
	filter := query.StoryFilter("red sky", query.GenreSet{})

	stories, _ := fetch(t, s, filter, "red sky", query.Page{Limit: 1})
	require.Len(t, stories, 1)
	stories[0].Attributes["author"] = "mutated"

	again, _ := fetch(t, s, filter, "red sky", query.Page{Limit: 1})
	assert.Equal(t, "A", again[0].Attributes["author"])
}

func TestStore_SaveCatalog_Upserts(t *testing.T) {
	s := NewStoreFromCatalog(testCatalog())
	err := s.SaveCatalog(context.Background(), domain.Catalog{
		Stories: []domain.Story{{ID: 4, Title: "Red Green"}},
	})
	require.NoError(t, err)

	_, count := fetch(t, s, query.StoryFilter("", query.GenreSet{}), "", query.Page{Limit: 10})
	assert.Equal(t, int64(4), count)

	_, reds := fetch(t, s, query.StoryFilter("red", query.GenreSet{}), "red", query.Page{Limit: 10})
	assert.Equal(t, int64(4), reds)
}

func TestStore_ListGenres_SortedByID(t *testing.T) {
	s := NewStoreFromCatalog(testCatalog())

	genres, err := s.ListGenres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, int64(1), genres[0].ID)
	assert.Equal(t, "Fantasy", genres[0].Name)
}

func TestStore_CanceledContext(t *testing.T) {
	s := NewStoreFromCatalog(testCatalog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Session(ctx, func(storage.StorySession) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.ListGenres(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
