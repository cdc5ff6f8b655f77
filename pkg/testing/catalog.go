package testing

import "github.com/DjordjeVuckovic/story-hunter/internal/domain"

// StoryCatalog is the catalog backend integration tests seed. Searching "red"
// ranks stories 1 and 2 as prefix matches and 3 as a substring match; story 4
// has no genre and a literal '%' in its title.
func StoryCatalog() domain.Catalog {
	fantasy, drama := int64(1), int64(2)
	return domain.Catalog{
		Genres: []domain.Genre{
			{ID: 1, Name: "Fantasy", Attributes: map[string]any{"description": "Dragons"}},
			{ID: 2, Name: "Drama"},
		},
		Stories: []domain.Story{
			{ID: 1, Title: "Red Sky", GenreID: &fantasy, Attributes: map[string]any{"author": "Ann"}},
			{ID: 2, Title: "Redemption", GenreID: &drama},
			{ID: 3, Title: "Blue Red", GenreID: &fantasy},
			{ID: 4, Title: "100% Green"},
		},
	}
}
