package pagination

import (
	"math"

	"github.com/DjordjeVuckovic/story-hunter/pkg/utils"
)

// OffsetRequest represents an offset-based pagination request
type OffsetRequest struct {
	Page int `json:"page" query:"page" validate:"min=1"`
	Size int `json:"size" query:"limit" validate:"min=1"`
}

// ParseOffsetRequest builds a normalized request from raw query values.
// The leading integer of each value is used ("2abc" is 2); a value without one,
// or one that is not positive, falls back to the default.
func ParseOffsetRequest(rawPage, rawSize string) OffsetRequest {
	r := OffsetRequest{
		Page: parsePositive(rawPage),
		Size: parsePositive(rawSize),
	}
	r.Normalize()
	return r
}

// Normalize replaces a non-positive page or size with its default.
func (r *OffsetRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = PageDefault
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
}

// Offset returns (page-1)*size, saturating at math.MaxInt64 instead of overflowing.
func (r OffsetRequest) Offset() int64 {
	page, size := int64(r.Page), int64(r.Size)
	if page <= 1 || size <= 0 {
		return 0
	}
	if page-1 > math.MaxInt64/size {
		return math.MaxInt64
	}
	return (page - 1) * size
}

func parsePositive(raw string) int {
	n, ok := utils.ParseLeadingInt(raw)
	if !ok || n < 1 {
		return 0
	}
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
