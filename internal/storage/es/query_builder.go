package es

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

const titleKeywordField = domain.StoryFieldTitle + ".keyword"

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func containsPattern(term string) string {
	return "*" + wildcardEscaper.Replace(term) + "*"
}

func matchAll(boost *float32) types.Query {
	return types.Query{MatchAll: &types.MatchAllQuery{Boost: boost}}
}

// filterQuery renders a predicate as a non-scoring query.
func filterQuery(p query.Predicate) (types.Query, error) {
	switch v := p.(type) {
	case nil:
		return matchAll(nil), nil
	case query.TitleContains:
		if v.Term == "" {
			return matchAll(nil), nil
		}
		return titleContains(v.Term, nil), nil
	case query.GenreIn:
		values := make([]types.FieldValue, 0, len(v.IDs))
		for _, id := range v.IDs {
			values = append(values, id)
		}
		return types.Query{
			Terms: &types.TermsQuery{
				TermsQuery: map[string]types.TermsQueryField{
					domain.StoryFieldGenreID: values,
				},
			},
		}, nil
	case query.And:
		if len(v) == 0 {
			return matchAll(nil), nil
		}
		clauses := make([]types.Query, 0, len(v))
		for _, clause := range v {
			q, err := filterQuery(clause)
			if err != nil {
				return types.Query{}, err
			}
			clauses = append(clauses, q)
		}
		return types.Query{Bool: &types.BoolQuery{Filter: clauses}}, nil
	default:
		return types.Query{}, fmt.Errorf("unsupported predicate %T", p)
	}
}

func titleContains(term string, boost *float32) types.Query {
	pattern := containsPattern(term)
	caseInsensitive := true
	return types.Query{
		Wildcard: map[string]types.WildcardQuery{
			titleKeywordField: {
				Value:           &pattern,
				CaseInsensitive: &caseInsensitive,
				Boost:           boost,
			},
		},
	}
}

func titlePrefix(term string, boost *float32) types.Query {
	caseInsensitive := true
	return types.Query{
		Prefix: map[string]types.PrefixQuery{
			titleKeywordField: {
				Value:           term,
				CaseInsensitive: &caseInsensitive,
				Boost:           boost,
			},
		},
	}
}

// rankQuery renders the ladder as a dis_max over constant-score clauses, so a
// story scores exactly the rank of the best tier it matches.
func rankQuery(r query.Ranking) (*types.Query, error) {
	tiers := make([]types.Query, 0, len(r.Ladder))

ladder:
	for _, tier := range r.Ladder {
		boost := float32(tier.Rank)
		switch tier.Match {
		case query.MatchAny:
			tiers = append(tiers, matchAll(&boost))
			break ladder
		case query.MatchPrefix, query.MatchContains:
			if r.Term == "" {
				// an empty term is a prefix of every title
				tiers = append(tiers, matchAll(&boost))
				break ladder
			}
			if tier.Match == query.MatchPrefix {
				tiers = append(tiers, titlePrefix(r.Term, &boost))
			} else {
				tiers = append(tiers, titleContains(r.Term, &boost))
			}
		default:
			return nil, fmt.Errorf("unsupported relevance match %s", tier.Match)
		}
	}

	if len(tiers) == 0 {
		return nil, nil
	}
	return &types.Query{DisMax: &types.DisMaxQuery{Queries: tiers}}, nil
}

// searchQuery filters by the predicate and scores by the ranking.
func searchQuery(filter query.Predicate, ranking query.Ranking) (*types.Query, error) {
	f, err := filterQuery(filter)
	if err != nil {
		return nil, err
	}
	rank, err := rankQuery(ranking)
	if err != nil {
		return nil, err
	}

	b := &types.BoolQuery{Filter: []types.Query{f}}
	if rank != nil {
		b.Should = []types.Query{*rank}
	}
	return &types.Query{Bool: b}, nil
}
