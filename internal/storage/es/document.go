package es

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// maxResultWindow lifts the default 10k from+size limit so deep offset pages work.
const maxResultWindow = 1_000_000

type IndexBuilder struct{}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	window := maxResultWindow
	return types.IndexSettings{
		MaxResultWindow: &window,
	}
}

// buildStoryMapping keeps title searchable both analysed and as an exact
// keyword, which the wildcard and prefix clauses run against.
func (b *IndexBuilder) buildStoryMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			domain.StoryFieldID:      types.NewLongNumberProperty(),
			domain.StoryFieldTitle:   b.createTextPropertyWithKeyword(),
			domain.StoryFieldGenreID: types.NewLongNumberProperty(),
			"author":                 b.createTextPropertyWithKeyword(),
			"description":            types.NewTextProperty(),
			"cover_url":              types.NewKeywordProperty(),
		},
	}
}

func (b *IndexBuilder) buildGenreMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			domain.GenreFieldID:   types.NewLongNumberProperty(),
			domain.GenreFieldName: b.createTextPropertyWithKeyword(),
			"description":         types.NewTextProperty(),
		},
	}
}

func (b *IndexBuilder) createTextPropertyWithKeyword() types.Property {
	textProp := types.NewTextProperty()
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}

// decodeRecord reads a hit source, keeping numbers exact.
func decodeRecord(source json.RawMessage) (domain.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(source))
	dec.UseNumber()

	var rec domain.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return rec, nil
}
