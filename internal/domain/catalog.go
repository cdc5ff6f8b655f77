package domain

import (
	"fmt"

	"github.com/DjordjeVuckovic/story-hunter/internal/apperr"
)

// Catalog is a full snapshot of genres and stories, used to seed a backend.
type Catalog struct {
	Genres  []Genre
	Stories []Story
}

// Validate checks id uniqueness and that every story genre exists in the catalog.
// Failures are *apperr.ValidationError located at the offending entry.
func (c *Catalog) Validate() error {
	genres := make(map[int64]struct{}, len(c.Genres))
	for i, g := range c.Genres {
		if _, dup := genres[g.ID]; dup {
			return apperr.NewFieldValidation(fmt.Sprintf("genres[%d]", i), fmt.Sprintf("duplicate genre id %d", g.ID), nil)
		}
		genres[g.ID] = struct{}{}
	}

	stories := make(map[int64]struct{}, len(c.Stories))
	for i, s := range c.Stories {
		field := fmt.Sprintf("stories[%d]", i)
		if _, dup := stories[s.ID]; dup {
			return apperr.NewFieldValidation(field, fmt.Sprintf("duplicate story id %d", s.ID), nil)
		}
		stories[s.ID] = struct{}{}

		if s.GenreID == nil {
			continue
		}
		if _, ok := genres[*s.GenreID]; !ok {
			return apperr.NewFieldValidation(field, fmt.Sprintf("references unknown genre %d", *s.GenreID), nil)
		}
	}
	return nil
}
