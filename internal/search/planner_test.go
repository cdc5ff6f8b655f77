package search

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DjordjeVuckovic/story-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genre(id int64) *int64 { return &id }

func exampleStore() *in_mem.Store {
	return in_mem.NewStoreFromCatalog(domain.Catalog{
		Genres: []domain.Genre{{ID: 1, Name: "Fantasy"}, {ID: 2, Name: "Drama"}},
		Stories: []domain.Story{
			{ID: 1, Title: "Red Sky", GenreID: genre(1)},
			{ID: 2, Title: "Redemption", GenreID: genre(2)},
			{ID: 3, Title: "Blue Red", GenreID: genre(1)},
			{ID: 4, Title: "Green", GenreID: nil},
		},
	})
}

func storyIDs(stories []domain.Story) []int64 {
	out := make([]int64, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.ID)
	}
	return out
}

func TestPlanner_Search_Example(t *testing.T) {
	planner := NewPlanner(exampleStore())
	ctx := context.Background()

	first, err := planner.Search(ctx, ParseRequest("1", "2", "red", ""))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, storyIDs(first.Stories))
	assert.Equal(t, 3, first.Stories[0].Relevance)
	assert.Equal(t, 3, first.Stories[1].Relevance)
	assert.Equal(t, 1, first.CurrentPage)
	assert.Equal(t, int64(2), first.TotalPages)

	second, err := planner.Search(ctx, ParseRequest("2", "2", "red", ""))
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, storyIDs(second.Stories))
	assert.Equal(t, 2, second.Stories[0].Relevance)
	assert.Equal(t, int64(2), second.TotalPages)
}

func TestPlanner_Search_PartlyNumericParams(t *testing.T) {
	planner := NewPlanner(exampleStore())
	ctx := context.Background()

	res, err := planner.Search(ctx, ParseRequest("2abc", "2.5", "red", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, []int64{3}, storyIDs(res.Stories))
	assert.Equal(t, int64(2), res.TotalPages)

	filtered, err := planner.Search(ctx, ParseRequest("1", "10", "", "2abc"))
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, storyIDs(filtered.Stories))
	assert.Equal(t, int64(1), filtered.TotalPages)
}

func TestPlanner_Search_Defaults(t *testing.T) {
	planner := NewPlanner(exampleStore())

	res, err := planner.Search(context.Background(), ParseRequest("abc", "-4", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Len(t, res.Stories, 3)
	assert.Equal(t, int64(2), res.TotalPages)
}

func TestPlanner_Search_UnnormalizedRequest(t *testing.T) {
	planner := NewPlanner(exampleStore())

	res, err := planner.Search(context.Background(), Request{Page: 0, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Len(t, res.Stories, 3)
}

func TestPlanner_Search_PageBeyondEnd(t *testing.T) {
	planner := NewPlanner(exampleStore())

	res, err := planner.Search(context.Background(), ParseRequest("50", "3", "", ""))
	require.NoError(t, err)
	assert.NotNil(t, res.Stories)
	assert.Empty(t, res.Stories)
	assert.Equal(t, 50, res.CurrentPage)
	assert.Equal(t, int64(2), res.TotalPages)
}

func TestPlanner_Search_NoMatches(t *testing.T) {
	planner := NewPlanner(exampleStore())

	res, err := planner.Search(context.Background(), ParseRequest("1", "3", "purple", ""))
	require.NoError(t, err)
	assert.Empty(t, res.Stories)
	assert.Equal(t, int64(0), res.TotalPages)
}

func TestPlanner_Search_GenreTokens(t *testing.T) {
	planner := NewPlanner(exampleStore())
	ctx := context.Background()

	direct, err := planner.Search(ctx, Request{Page: 1, PageSize: 10, Genres: query.NewGenreSet(2)})
	require.NoError(t, err)

	garbage, err := planner.Search(ctx, ParseRequest("1", "10", "", "abc,,2"))
	require.NoError(t, err)
	assert.Equal(t, direct, garbage)
	assert.Equal(t, []int64{2}, storyIDs(garbage.Stories))

	unfiltered, err := planner.Search(ctx, ParseRequest("1", "10", "", ""))
	require.NoError(t, err)

	allGarbage, err := planner.Search(ctx, ParseRequest("1", "10", "", "abc,xyz"))
	require.NoError(t, err)
	assert.Equal(t, unfiltered, allGarbage)
	assert.Len(t, allGarbage.Stories, 4, "null genre stories stay visible without a genre filter")
}

func TestPlanner_Search_CustomLadder(t *testing.T) {
	planner := NewPlanner(exampleStore(), WithLadder(query.Ladder{{Rank: 5, Match: query.MatchAny}}))

	res, err := planner.Search(context.Background(), ParseRequest("1", "3", "red", ""))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, storyIDs(res.Stories), "equal ranks fall back to id order")
	assert.Equal(t, 5, res.Stories[2].Relevance)
}

func TestPlanner_Search_Idempotent(t *testing.T) {
	planner := NewPlanner(exampleStore())
	req := ParseRequest("1", "2", "re", "1,2")

	a, err := planner.Search(context.Background(), req)
	require.NoError(t, err)
	b, err := planner.Search(context.Background(), req)
	require.NoError(t, err)

	rawA, err := json.Marshal(a)
	require.NoError(t, err)
	rawB, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, rawA, rawB)
}

type failingReader struct {
	sessionErr error
	fetchErr   error
	countErr   error
	released   int
}

func (f *failingReader) Session(ctx context.Context, fn func(storage.StorySession) error) error {
	defer func() { f.released++ }()
	if f.sessionErr != nil {
		return f.sessionErr
	}
	return fn(f)
}

func (f *failingReader) FetchPage(context.Context, query.Predicate, query.Ranking, query.Page) ([]domain.Story, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return []domain.Story{{ID: 1, Title: "partial"}}, nil
}

func (f *failingReader) Count(context.Context, query.Predicate) (int64, error) {
	return 1, f.countErr
}

func TestPlanner_Search_Failures(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name   string
		reader *failingReader
	}{
		{name: "session", reader: &failingReader{sessionErr: cause}},
		{name: "fetch", reader: &failingReader{fetchErr: cause}},
		{name: "count", reader: &failingReader{countErr: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewPlanner(tt.reader).Search(context.Background(), ParseRequest("1", "3", "x", ""))

			assert.Nil(t, res, "no partial results")
			assert.True(t, apperr.IsQueryFailed(err, apperr.QueryStories))
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, 1, tt.reader.released)
		})
	}
}

type genreReaderFunc func(ctx context.Context) ([]domain.Genre, error)

func (f genreReaderFunc) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return f(ctx)
}

func TestGenreLister(t *testing.T) {
	t.Run("lists all genres", func(t *testing.T) {
		genres, err := NewGenreLister(exampleStore()).List(context.Background())
		require.NoError(t, err)
		assert.Len(t, genres, 2)
	})

	t.Run("empty catalog is an empty list", func(t *testing.T) {
		lister := NewGenreLister(genreReaderFunc(func(context.Context) ([]domain.Genre, error) {
			return nil, nil
		}))
		genres, err := lister.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, genres)
		assert.Empty(t, genres)
	})

	t.Run("failure is a genres query error", func(t *testing.T) {
		lister := NewGenreLister(genreReaderFunc(func(context.Context) ([]domain.Genre, error) {
			return nil, errors.New("relation \"genres\" does not exist")
		}))
		_, err := lister.List(context.Background())
		assert.True(t, apperr.IsQueryFailed(err, apperr.QueryGenres))
		assert.False(t, apperr.IsQueryFailed(err, apperr.QueryStories))
	})
}
