package pagination

// OffsetResult represents traditional offset-based pagination
type OffsetResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int64 `json:"total_pages"`
}

// NewOffsetResult creates a new offset-based result
func NewOffsetResult[T any](items []T, total int64, page int, size int) *OffsetResult[T] {
	if items == nil {
		items = make([]T, 0)
	}

	return &OffsetResult[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: TotalPages(total, size),
	}
}

// TotalPages returns ceil(total/size). A non-positive size or total yields 0.
func TotalPages(total int64, size int) int64 {
	if total <= 0 || size <= 0 {
		return 0
	}
	s := int64(size)
	pages := total / s
	if total%s != 0 {
		pages++
	}
	return pages
}
