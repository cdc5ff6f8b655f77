package search

import (
	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
	"github.com/DjordjeVuckovic/story-hunter/pkg/pagination"
)

// Request is a normalized story search request.
type Request struct {
	Page     int
	PageSize int
	Text     string
	Genres   query.GenreSet
}

// ParseRequest turns raw query values into a Request. It never fails: values are
// read by their leading integer, a page or page size without a positive one gets
// its default, and genre tokens without one are dropped.
func ParseRequest(rawPage, rawPageSize, text, rawGenres string) Request {
	p := pagination.ParseOffsetRequest(rawPage, rawPageSize)
	return Request{
		Page:     p.Page,
		PageSize: p.Size,
		Text:     text,
		Genres:   query.ParseGenreSet(rawGenres),
	}
}

func (r Request) normalize() Request {
	p := pagination.OffsetRequest{Page: r.Page, Size: r.PageSize}
	p.Normalize()
	r.Page, r.PageSize = p.Page, p.Size
	return r
}

func (r Request) offsetRequest() pagination.OffsetRequest {
	return pagination.OffsetRequest{Page: r.Page, Size: r.PageSize}
}
