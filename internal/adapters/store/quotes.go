// Package store provides data adapters: the bundled quote dataset and
// the visitor preference/session persistence layer.
package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsamuelsen/quotedeck/internal/domain"
)

//go:embed data/quotes.json
var bundledQuotes []byte

// quoteRecord is the external DTO for one dataset entry.
// Never exposed outside this package; translation to domain types
// happens at load time.
type quoteRecord struct {
	ID     string        `json:"id"`
	Text   string        `json:"text"`
	Author *authorRecord `json:"author,omitempty"`
}

// authorRecord is the external DTO for the optional author block.
type authorRecord struct {
	Name  string `json:"name,omitempty"`
	Bio   string `json:"bio,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// Catalog holds the immutable quote collection for the process lifetime.
// It implements ports.QuoteSource.
type Catalog struct {
	collection domain.Collection
}

// Collection returns the loaded quote collection.
func (c *Catalog) Collection() domain.Collection {
	return c.collection
}

// LoadCatalog loads the quote dataset. When path is empty the dataset
// bundled into the binary is used; otherwise the file at path is read.
// The dataset is a UTF-8 JSON array of quote records with no versioning
// field. Entries are not validated beyond JSON well-formedness: missing
// optional fields become display fallbacks downstream, not errors.
func LoadCatalog(path string) (*Catalog, error) {
	data := bundledQuotes

	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading quote dataset %q: %w", path, err)
		}

		data = fileData
	}

	var records []quoteRecord

	err := json.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("parsing quote dataset: %w", err)
	}

	collection := make(domain.Collection, 0, len(records))
	for _, r := range records {
		collection = append(collection, toDomainQuote(r))
	}

	return &Catalog{collection: collection}, nil
}

// NewCatalog wraps an existing collection. Used by tests.
func NewCatalog(collection domain.Collection) *Catalog {
	return &Catalog{collection: collection}
}

// toDomainQuote translates the external DTO to the domain type.
func toDomainQuote(r quoteRecord) domain.Quote {
	q := domain.Quote{
		ID:   r.ID,
		Text: r.Text,
	}

	if r.Author != nil {
		q.Author = &domain.Author{
			Name:  r.Author.Name,
			Bio:   r.Author.Bio,
			Photo: r.Author.Photo,
		}
	}

	return q
}
