package storage

import (
	"context"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
)

// Indexer loads a catalog snapshot into a backend. Loading the same catalog
// twice leaves the backend unchanged.
type Indexer interface {
	SaveCatalog(ctx context.Context, catalog domain.Catalog) error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

var SupportedTypes = []Type{ES, PG, InMem}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
