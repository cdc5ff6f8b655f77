package query

import (
	"slices"
	"strings"
)

// Predicate is a storage-neutral filter expression over stories.
// Every backend renders the same Predicate for both the page fetch and the count,
// so the two can never disagree on which rows match.
type Predicate interface {
	isPredicate()
}

// TitleContains matches titles containing Term, case-insensitively.
// An empty Term matches every title.
type TitleContains struct {
	Term string
}

// GenreIn matches stories whose genre is one of IDs.
// Stories without a genre never match.
type GenreIn struct {
	IDs []int64
}

// And matches when every clause matches. An empty And matches everything.
type And []Predicate

func (TitleContains) isPredicate() {}
func (GenreIn) isPredicate()       {}
func (And) isPredicate()           {}

// StoryFilter builds the search predicate: title contains term AND, only when the
// genre set is not empty, genre is one of the set.
func StoryFilter(term string, genres GenreSet) Predicate {
	p := And{TitleContains{Term: term}}
	if !genres.Empty() {
		p = append(p, GenreIn{IDs: genres.IDs()})
	}
	return p
}

// Eval reports whether a story with the given title and genre satisfies p.
func Eval(p Predicate, title string, genreID *int64) bool {
	switch v := p.(type) {
	case nil:
		return true
	case TitleContains:
		return ContainsFold(title, v.Term)
	case GenreIn:
		return genreID != nil && slices.Contains(v.IDs, *genreID)
	case And:
		for _, clause := range v {
			if !Eval(clause, title, genreID) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// HasPrefixFold reports whether s begins with prefix, ignoring case.
func HasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}
