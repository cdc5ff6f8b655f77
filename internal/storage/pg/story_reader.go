package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage"
	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
	"github.com/jackc/pgx/v5"
)

type StoryReader struct {
	pool *ConnectionPool
}

func NewStoryReader(pool *ConnectionPool) *StoryReader {
	return &StoryReader{pool: pool}
}

// Session acquires one pooled connection and opens a read-only REPEATABLE READ
// transaction on it, so the page fetch and the count read the same snapshot.
// The connection goes back to the pool on every return path.
func (r *StoryReader) Session(ctx context.Context, fn func(storage.StorySession) error) error {
	conn, err := r.pool.GetConn().Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(&storySession{q: tx, pool: r.pool}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type storySession struct {
	q    querier
	pool *ConnectionPool
}

func (s *storySession) FetchPage(ctx context.Context, filter query.Predicate, ranking query.Ranking, page query.Page) ([]domain.Story, error) {
	sql, args, err := pageQuery(filter, ranking, page)
	if err != nil {
		return nil, err
	}
	slog.Debug("PostgreSQL story page query", "sql", sql, "limit", page.Limit, "offset", page.Offset)

	queryCtx, cancel := s.pool.newQueryCtx(ctx)
	defer cancel()

	records, err := queryRecords(queryCtx, s.q, sql, args)
	if err != nil {
		return nil, err
	}

	stories := make([]domain.Story, 0, len(records))
	for _, rec := range records {
		story, err := domain.NewStory(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to map story row: %w", err)
		}
		stories = append(stories, story)
	}

	slog.Info("PG story page fetched", "returned_count", len(stories))
	return stories, nil
}

func (s *storySession) Count(ctx context.Context, filter query.Predicate) (int64, error) {
	sql, args, err := countQuery(filter)
	if err != nil {
		return 0, err
	}

	queryCtx, cancel := s.pool.newQueryCtx(ctx)
	defer cancel()

	var count int64
	if err := s.q.QueryRow(queryCtx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count stories: %w", err)
	}
	return count, nil
}

var _ storage.StoryReader = (*StoryReader)(nil)
