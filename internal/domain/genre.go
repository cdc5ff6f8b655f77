package domain

import (
	"encoding/json"
	"errors"
)

const (
	GenreFieldID   = "id"
	GenreFieldName = "name"
)

// Genre is a catalog genre; display columns besides name live in Attributes.
type Genre struct {
	ID   int64
	Name string

	Attributes map[string]any
}

func NewGenre(rec Record) (Genre, error) {
	id, ok, err := rec.intField(GenreFieldID)
	if err != nil {
		return Genre{}, err
	}
	if !ok {
		return Genre{}, errors.New("genre record has no id")
	}

	return Genre{
		ID:         id,
		Name:       rec.stringField(GenreFieldName),
		Attributes: rec.without(GenreFieldID, GenreFieldName),
	}, nil
}

func (g Genre) Record() Record {
	return mergeFields(g.Attributes, map[string]any{
		GenreFieldID:   g.ID,
		GenreFieldName: g.Name,
	})
}

func (g Genre) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(g.Record()))
}
