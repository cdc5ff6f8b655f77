package pg

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/jackc/pgx/v5"
)

// querier is what both a pooled connection and a transaction can do.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// queryRecords runs query and returns each row as column name -> value, so
// columns reach the API exactly as stored.
func queryRecords(ctx context.Context, q querier, query string, params []any) ([]domain.Record, error) {
	rows, err := q.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}

		record := make(domain.Record, len(values))
		for i, fd := range rows.FieldDescriptions() {
			record[fd.Name] = values[i]
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}
