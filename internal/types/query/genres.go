package query

import (
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/story-hunter/pkg/utils"
)

// GenreDelimiter separates genre ids in the raw request value.
const GenreDelimiter = ","

// GenreSet is an immutable, sorted set of genre ids.
// The zero value is the empty set, which means "no genre filter".
type GenreSet struct {
	ids []int64
}

func NewGenreSet(ids ...int64) GenreSet {
	if len(ids) == 0 {
		return GenreSet{}
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return GenreSet{ids: slices.Compact(sorted)}
}

// ParseGenreSet parses a comma separated list of ids. Each token contributes its
// leading integer, so "2abc" is 2; tokens without one are dropped, so "abc,,2"
// yields {2} and "abc,xyz" yields the empty set.
func ParseGenreSet(raw string) GenreSet {
	if strings.TrimSpace(raw) == "" {
		return GenreSet{}
	}

	var ids []int64
	for _, token := range strings.Split(raw, GenreDelimiter) {
		id, ok := utils.ParseLeadingInt(token)
		if !ok {
			continue
		}
		ids = append(ids, id)
	}
	return NewGenreSet(ids...)
}

func (s GenreSet) Empty() bool {
	return len(s.ids) == 0
}

func (s GenreSet) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the ids in ascending order.
func (s GenreSet) IDs() []int64 {
	return slices.Clone(s.ids)
}

func (s GenreSet) Contains(id int64) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}
