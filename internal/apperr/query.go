package apperr

import "errors"

// QueryKind tells which read failed, so the HTTP layer can answer each one
// the way its clients expect.
type QueryKind string

const (
	QueryStories QueryKind = "stories"
	QueryGenres  QueryKind = "genres"
)

// QueryError reports a storage read that failed as a whole.
// Err carries the storage detail for logs; it is never sent to clients.
type QueryError struct {
	Kind QueryKind
	Err  error
}

func (e *QueryError) Error() string {
	msg := string(e.Kind) + " query failed"
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func NewStoriesQueryFailed(err error) *QueryError {
	return &QueryError{Kind: QueryStories, Err: err}
}

func NewGenresQueryFailed(err error) *QueryError {
	return &QueryError{Kind: QueryGenres, Err: err}
}

// IsQueryFailed reports whether err is a QueryError of the given kind.
func IsQueryFailed(err error, kind QueryKind) bool {
	var qe *QueryError
	return errors.As(err, &qe) && qe.Kind == kind
}
