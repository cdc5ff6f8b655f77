package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/story-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/search"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/in_mem"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genreRef(id int64) *int64 { return &id }

func newTestEcho(stories storage.StoryReader, genres storage.GenreReader) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewStoryRouter(e, search.NewPlanner(stories), search.NewGenreLister(genres)).Bind()
	return e
}

func catalogStore() *in_mem.Store {
	return in_mem.NewStoreFromCatalog(domain.Catalog{
		Genres: []domain.Genre{
			{ID: 1, Name: "Fantasy", Attributes: map[string]any{"description": "Dragons"}},
			{ID: 2, Name: "Drama"},
		},
		Stories: []domain.Story{
			{ID: 1, Title: "Red Sky", GenreID: genreRef(1), Attributes: map[string]any{"author": "Ann"}},
			{ID: 2, Title: "Redemption", GenreID: genreRef(2)},
			{ID: 3, Title: "Blue Red", GenreID: genreRef(1)},
			{ID: 4, Title: "Green", GenreID: nil},
		},
	})
}

type storiesBody struct {
	Stories     []map[string]any `json:"stories"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int64            `json:"totalPages"`
}

func get(t *testing.T, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeStories(t *testing.T, rec *httptest.ResponseRecorder) storiesBody {
	t.Helper()
	var body storiesBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func ids(body storiesBody) []float64 {
	out := make([]float64, 0, len(body.Stories))
	for _, s := range body.Stories {
		out = append(out, s["id"].(float64))
	}
	return out
}

func TestSearchStories(t *testing.T) {
	store := catalogStore()
	e := newTestEcho(store, store)

	tests := []struct {
		name        string
		target      string
		wantIDs     []float64
		wantPage    int
		wantTotal   int64
		wantTopRank float64
	}{
		{
			name:        "first page of ranked matches",
			target:      "/api/stories?search=red&limit=2&page=1",
			wantIDs:     []float64{1, 2},
			wantPage:    1,
			wantTotal:   2,
			wantTopRank: 3,
		},
		{
			name:        "second page",
			target:      "/api/stories?search=red&limit=2&page=2",
			wantIDs:     []float64{3},
			wantPage:    2,
			wantTotal:   2,
			wantTopRank: 2,
		},
		{
			name:        "pageSize alias",
			target:      "/api/stories?search=red&pageSize=2&page=2",
			wantIDs:     []float64{3},
			wantPage:    2,
			wantTotal:   2,
			wantTopRank: 2,
		},
		{
			name:        "defaults on garbage params",
			target:      "/api/stories?page=zero&limit=-1",
			wantIDs:     []float64{1, 2, 3},
			wantPage:    1,
			wantTotal:   2,
			wantTopRank: 3,
		},
		{
			name:        "leading integers of page and limit",
			target:      "/api/stories?search=red&page=2abc&limit=2.5",
			wantIDs:     []float64{3},
			wantPage:    2,
			wantTotal:   2,
			wantTopRank: 2,
		},
		{
			name:        "partly numeric genre token filters",
			target:      "/api/stories?genres=2abc&limit=10",
			wantIDs:     []float64{2},
			wantPage:    1,
			wantTotal:   1,
			wantTopRank: 3,
		},
		{
			name:        "genre filter drops garbage tokens",
			target:      "/api/stories?genres=1,x,,1",
			wantIDs:     []float64{1, 3},
			wantPage:    1,
			wantTotal:   1,
			wantTopRank: 3,
		},
		{
			name:        "only garbage genres means no filter",
			target:      "/api/stories?genres=a,b&limit=10",
			wantIDs:     []float64{1, 2, 3, 4},
			wantPage:    1,
			wantTotal:   1,
			wantTopRank: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, e, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			body := decodeStories(t, rec)
			assert.Equal(t, tt.wantIDs, ids(body))
			assert.Equal(t, tt.wantPage, body.CurrentPage)
			assert.Equal(t, tt.wantTotal, body.TotalPages)
			assert.Equal(t, tt.wantTopRank, body.Stories[0]["relevance"])
		})
	}
}

func TestSearchStories_PassesColumnsThrough(t *testing.T) {
	store := catalogStore()
	e := newTestEcho(store, store)

	body := decodeStories(t, get(t, e, "/api/stories?search=sky"))
	require.Len(t, body.Stories, 1)
	story := body.Stories[0]
	assert.Equal(t, "Red Sky", story["title"])
	assert.Equal(t, float64(1), story["genre_id"])
	assert.Equal(t, "Ann", story["author"])
}

func TestSearchStories_PastLastPage(t *testing.T) {
	store := catalogStore()
	e := newTestEcho(store, store)

	rec := get(t, e, "/api/stories?search=red&page=9")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"stories":[],"currentPage":9,"totalPages":1}`, rec.Body.String())
}

func TestListGenres(t *testing.T) {
	store := catalogStore()
	e := newTestEcho(store, store)

	rec := get(t, e, "/api/genres")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"genres":[
		{"id":1,"name":"Fantasy","description":"Dragons"},
		{"id":2,"name":"Drama"}
	]}`, rec.Body.String())
}

type failingStorage struct{}

func (failingStorage) Session(context.Context, func(storage.StorySession) error) error {
	return errors.New("connection refused to db:5432")
}

func (failingStorage) ListGenres(context.Context) ([]domain.Genre, error) {
	return nil, errors.New("relation \"genres\" does not exist")
}

func TestQueryFailures(t *testing.T) {
	e := newTestEcho(failingStorage{}, failingStorage{})

	stories := get(t, e, "/api/stories?search=red")
	assert.Equal(t, http.StatusInternalServerError, stories.Code)
	assert.Equal(t, "Internal Server Error", stories.Body.String())
	assert.NotContains(t, stories.Body.String(), "5432")

	genres := get(t, e, "/api/genres")
	assert.Equal(t, http.StatusInternalServerError, genres.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch genres"}`, genres.Body.String())
}
