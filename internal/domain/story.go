package domain

import (
	"encoding/json"
	"errors"
)

const (
	StoryFieldID        = "id"
	StoryFieldTitle     = "title"
	StoryFieldGenreID   = "genre_id"
	StoryFieldRelevance = "relevance"
)

// Story is a catalog story. Columns other than id, title and genre_id are kept in
// Attributes and written back out unchanged, so the API mirrors the storage schema.
type Story struct {
	ID        int64
	Title     string
	GenreID   *int64
	Relevance int

	Attributes map[string]any
}

// NewStory builds a Story from a stored record. A "relevance" column, when present,
// is lifted into Relevance.
func NewStory(rec Record) (Story, error) {
	id, ok, err := rec.intField(StoryFieldID)
	if err != nil {
		return Story{}, err
	}
	if !ok {
		return Story{}, errors.New("story record has no id")
	}

	s := Story{
		ID:    id,
		Title: rec.stringField(StoryFieldTitle),
		Attributes: rec.without(
			StoryFieldID, StoryFieldTitle, StoryFieldGenreID, StoryFieldRelevance,
		),
	}

	genreID, ok, err := rec.intField(StoryFieldGenreID)
	if err != nil {
		return Story{}, err
	}
	if ok {
		s.GenreID = &genreID
	}

	relevance, ok, err := rec.intField(StoryFieldRelevance)
	if err != nil {
		return Story{}, err
	}
	if ok {
		s.Relevance = int(relevance)
	}

	return s, nil
}

// Record flattens the story back into a stored record, without relevance.
func (s Story) Record() Record {
	return mergeFields(s.Attributes, map[string]any{
		StoryFieldID:      s.ID,
		StoryFieldTitle:   s.Title,
		StoryFieldGenreID: s.GenreID,
	})
}

func (s Story) MarshalJSON() ([]byte, error) {
	out := s.Record()
	if s.Relevance > 0 {
		out[StoryFieldRelevance] = s.Relevance
	}
	return json.Marshal(map[string]any(out))
}
