package reader

import (
	"fmt"
	"io"
	"os"

	"github.com/DjordjeVuckovic/story-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/story-hunter/internal/domain"
	"gopkg.in/yaml.v3"
)

const CatalogKind = "Catalog"

// catalogFile is the YAML layout of a catalog fixture. Rows are free-form so any
// extra column is carried through to the backend.
type catalogFile struct {
	Kind    string           `yaml:"kind"`
	Version string           `yaml:"version"`
	Genres  []map[string]any `yaml:"genres"`
	Stories []map[string]any `yaml:"stories"`
}

type YAMLCatalogLoader struct {
	reader io.Reader
}

func NewYAMLCatalogLoader(reader io.Reader) *YAMLCatalogLoader {
	return &YAMLCatalogLoader{
		reader: reader,
	}
}

// Load decodes the catalog. A document that is not a well formed catalog yields
// an *apperr.ValidationError; with validate set, so does an inconsistent one.
func (cl *YAMLCatalogLoader) Load(validate bool) (*domain.Catalog, error) {
	decoder := yaml.NewDecoder(cl.reader)
	var file catalogFile
	if err := decoder.Decode(&file); err != nil {
		return nil, apperr.NewValidationWrap("malformed catalog yaml", err)
	}
	if file.Kind != "" && file.Kind != CatalogKind {
		return nil, apperr.NewFieldValidation("kind", fmt.Sprintf("unexpected kind %q, expected %q", file.Kind, CatalogKind), nil)
	}

	catalog := &domain.Catalog{
		Genres:  make([]domain.Genre, 0, len(file.Genres)),
		Stories: make([]domain.Story, 0, len(file.Stories)),
	}
	for i, row := range file.Genres {
		g, err := domain.NewGenre(row)
		if err != nil {
			return nil, apperr.NewFieldValidation(fmt.Sprintf("genres[%d]", i), "invalid genre", err)
		}
		catalog.Genres = append(catalog.Genres, g)
	}
	for i, row := range file.Stories {
		s, err := domain.NewStory(row)
		if err != nil {
			return nil, apperr.NewFieldValidation(fmt.Sprintf("stories[%d]", i), "invalid story", err)
		}
		catalog.Stories = append(catalog.Stories, s)
	}

	if validate {
		if err := catalog.Validate(); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// LoadCatalogFile opens path and loads it as a YAML catalog.
func LoadCatalogFile(path string, validate bool) (*domain.Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	return NewYAMLCatalogLoader(file).Load(validate)
}
