package pg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/story-hunter/internal/types/query"
)

const (
	storiesTable = "stories"
	genresTable  = "genres"
	titleColumn  = "title::text"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside a LIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func containsPattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

func prefixPattern(term string) string {
	return escapeLike(term) + "%"
}

// sqlBuilder collects positional arguments while rendering SQL fragments.
type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *sqlBuilder) ilike(pattern string) string {
	return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, titleColumn, b.arg(pattern))
}

// where renders a predicate as a boolean SQL expression.
func (b *sqlBuilder) where(p query.Predicate) (string, error) {
	switch v := p.(type) {
	case nil:
		return "TRUE", nil
	case query.TitleContains:
		return b.ilike(containsPattern(v.Term)), nil
	case query.GenreIn:
		return fmt.Sprintf("genre_id = ANY(%s::bigint[])", b.arg(v.IDs)), nil
	case query.And:
		if len(v) == 0 {
			return "TRUE", nil
		}
		clauses := make([]string, 0, len(v))
		for _, clause := range v {
			sql, err := b.where(clause)
			if err != nil {
				return "", err
			}
			clauses = append(clauses, "("+sql+")")
		}
		return strings.Join(clauses, " AND "), nil
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

// rank renders the relevance ladder as a CASE expression. Tiers after a
// MatchAny tier can never be chosen and are left out.
func (b *sqlBuilder) rank(r query.Ranking) (string, error) {
	var (
		whens    []string
		fallback = "0"
	)

ladder:
	for _, tier := range r.Ladder {
		rank := strconv.Itoa(tier.Rank)
		switch tier.Match {
		case query.MatchPrefix:
			whens = append(whens, fmt.Sprintf("WHEN %s THEN %s", b.ilike(prefixPattern(r.Term)), rank))
		case query.MatchContains:
			whens = append(whens, fmt.Sprintf("WHEN %s THEN %s", b.ilike(containsPattern(r.Term)), rank))
		case query.MatchAny:
			fallback = rank
			break ladder
		default:
			return "", fmt.Errorf("unsupported relevance match %s", tier.Match)
		}
	}

	if len(whens) == 0 {
		return fallback, nil
	}
	return fmt.Sprintf("CASE %s ELSE %s END", strings.Join(whens, " "), fallback), nil
}

// pageQuery renders the ranked, paginated story fetch.
func pageQuery(filter query.Predicate, ranking query.Ranking, page query.Page) (string, []any, error) {
	b := &sqlBuilder{}
	rankExpr, err := b.rank(ranking)
	if err != nil {
		return "", nil, err
	}
	whereClause, err := b.where(filter)
	if err != nil {
		return "", nil, err
	}

	sql := fmt.Sprintf(`
		SELECT *, %s AS relevance
		FROM %s
		WHERE %s
		ORDER BY relevance DESC, id ASC
		LIMIT %s OFFSET %s
	`, rankExpr, storiesTable, whereClause, b.arg(page.Limit), b.arg(page.Offset))

	return sql, b.args, nil
}

// countQuery renders the count over the exact predicate pageQuery uses.
func countQuery(filter query.Predicate) (string, []any, error) {
	b := &sqlBuilder{}
	whereClause, err := b.where(filter)
	if err != nil {
		return "", nil, err
	}

	sql := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, storiesTable, whereClause)
	return sql, b.args, nil
}
