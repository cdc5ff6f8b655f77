package es

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

type StoryReader struct {
	client *Client
}

func NewStoryReader(client *Client) *StoryReader {
	return &StoryReader{client: client}
}

// Session runs fn directly: every request goes over the shared HTTP transport
// and there is no per-search resource to hold.
func (r *StoryReader) Session(ctx context.Context, fn func(storage.StorySession) error) error {
	return fn(&storySession{client: r.client})
}

type storySession struct {
	client *Client
}

// FetchPage pages with from/size. Pages starting past the index result window
// are returned empty.
func (s *storySession) FetchPage(ctx context.Context, filter query.Predicate, ranking query.Ranking, page query.Page) ([]domain.Story, error) {
	if page.Limit <= 0 || page.Offset >= maxResultWindow {
		return []domain.Story{}, nil
	}
	from := int(page.Offset)
	size := min(page.Limit, maxResultWindow-from)

	q, err := searchQuery(filter, ranking)
	if err != nil {
		return nil, err
	}

	slog.Debug("Executing es story search", "term", ranking.Term, "from", from, "size", size)

	desc := sortorder.Desc
	asc := sortorder.Asc
	res, err := s.client.es.Search().
		Index(s.client.storyIndex).
		Query(q).
		From(from).
		Size(size).
		TrackScores(true).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"_score": {Order: &desc},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					domain.StoryFieldID: {Order: &asc},
				},
			},
		).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "term", ranking.Term)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	stories := make([]domain.Story, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		rec, err := decodeRecord(hit.Source_)
		if err != nil {
			return nil, err
		}
		story, err := domain.NewStory(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to map story document: %w", err)
		}
		story.Relevance = ranking.Rank(story.Title)
		stories = append(stories, story)
	}

	slog.Info("Es story page fetched", "returned_count", len(stories))
	return stories, nil
}

func (s *storySession) Count(ctx context.Context, filter query.Predicate) (int64, error) {
	q, err := filterQuery(filter)
	if err != nil {
		return 0, err
	}

	res, err := s.client.es.Count().
		Index(s.client.storyIndex).
		Query(&q).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count stories: %w", err)
	}
	return res.Count, nil
}

var _ storage.StoryReader = (*StoryReader)(nil)
