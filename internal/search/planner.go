package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/story-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
	"github.com/DjordjeVuckovic/story-hunter/pkg/pagination"
)

// Result is one page of ranked stories.
type Result struct {
	Stories     []domain.Story `json:"stories"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int64          `json:"totalPages"`
}

// Planner turns a Request into a ranked page plus the page count. It holds no
// mutable state and is safe for concurrent use.
type Planner struct {
	reader storage.StoryReader
	ladder query.Ladder
}

type PlannerOption func(*Planner)

// WithLadder replaces the default relevance ladder.
func WithLadder(ladder query.Ladder) PlannerOption {
	return func(p *Planner) {
		p.ladder = ladder
	}
}

func NewPlanner(reader storage.StoryReader, opts ...PlannerOption) *Planner {
	p := &Planner{
		reader: reader,
		ladder: query.DefaultLadder,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Search fetches the requested page and counts all matches with the same
// predicate inside one storage session. Any storage failure fails the whole call
// with a stories QueryError.
func (p *Planner) Search(ctx context.Context, req Request) (*Result, error) {
	req = req.normalize()

	filter := query.StoryFilter(req.Text, req.Genres)
	ranking := query.Ranking{Term: req.Text, Ladder: p.ladder}
	offset := req.offsetRequest()
	page := query.Page{Limit: offset.Size, Offset: offset.Offset()}

	slog.Info("Executing story search",
		"search", req.Text,
		"genres", req.Genres.IDs(),
		"page", req.Page,
		"page_size", req.PageSize)

	var (
		stories []domain.Story
		total   int64
	)
	err := p.reader.Session(ctx, func(s storage.StorySession) error {
		var err error
		stories, err = s.FetchPage(ctx, filter, ranking, page)
		if err != nil {
			return fmt.Errorf("failed to fetch stories page: %w", err)
		}
		total, err = s.Count(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to count stories: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.NewStoriesQueryFailed(err)
	}

	res := pagination.NewOffsetResult(stories, total, req.Page, req.PageSize)

	slog.Debug("Story search completed",
		"returned", len(res.Items),
		"total_matches", res.Total,
		"total_pages", res.TotalPages)

	return &Result{
		Stories:     res.Items,
		CurrentPage: res.Page,
		TotalPages:  res.TotalPages,
	}, nil
}
