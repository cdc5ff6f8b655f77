package query

import "cmp"

// MatchKind is the title test a relevance tier applies.
type MatchKind int

const (
	// MatchPrefix: the title starts with the term.
	MatchPrefix MatchKind = iota
	// MatchContains: the title contains the term anywhere.
	MatchContains
	// MatchAny always matches and is the ladder's fallback.
	MatchAny
)

func (k MatchKind) String() string {
	switch k {
	case MatchPrefix:
		return "prefix"
	case MatchContains:
		return "contains"
	case MatchAny:
		return "any"
	default:
		return "unknown"
	}
}

// Tier assigns Rank to titles that pass its Match test.
type Tier struct {
	Rank  int
	Match MatchKind
}

// Ladder is an ordered list of tiers; the first tier whose test passes wins.
type Ladder []Tier

// DefaultLadder ranks prefix matches 3 and other substring matches 2.
// The rank 1 fallback cannot be reached while the filter requires a substring
// match; it stays so another match rule can be slotted in between.
var DefaultLadder = Ladder{
	{Rank: 3, Match: MatchPrefix},
	{Rank: 2, Match: MatchContains},
	{Rank: 1, Match: MatchAny},
}

// Rank returns the rank of the first tier matching title, or 0 when none does.
func (l Ladder) Rank(title, term string) int {
	for _, tier := range l {
		if tier.matches(title, term) {
			return tier.Rank
		}
	}
	return 0
}

func (t Tier) matches(title, term string) bool {
	switch t.Match {
	case MatchPrefix:
		return HasPrefixFold(title, term)
	case MatchContains:
		return ContainsFold(title, term)
	case MatchAny:
		return true
	default:
		return false
	}
}

// Ranking orders stories by relevance descending, then id ascending.
// The id tie-break makes the order total, which keeps pages disjoint.
type Ranking struct {
	Term   string
	Ladder Ladder
}

func NewRanking(term string) Ranking {
	return Ranking{Term: term, Ladder: DefaultLadder}
}

// Rank scores a title against the ranking term.
func (r Ranking) Rank(title string) int {
	return r.Ladder.Rank(title, r.Term)
}

// Compare orders (rankA, idA) before (rankB, idB) following the ranking law.
func (r Ranking) Compare(rankA int, idA int64, rankB int, idB int64) int {
	if c := cmp.Compare(rankB, rankA); c != 0 {
		return c
	}
	return cmp.Compare(idA, idB)
}

// Page is the window of the ranked result to fetch.
type Page struct {
	Limit  int
	Offset int64
}
