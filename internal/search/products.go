package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

const productMapping = `{
  "mappings": {
    "properties": {
      "title":        {"type": "text"},
      "description":  {"type": "text"},
      "price":        {"type": "scaled_float", "scaling_factor": 100},
      "categorySlug": {"type": "keyword"},
      "createdAt":    {"type": "date"}
    }
  }
}`

type document struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategorySlug string          `json:"categorySlug,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type Products struct {
	ES        *elasticsearch.Client
	IndexName string
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("elasticsearch: %s: %s: %s", op, res.Status(), strings.TrimSpace(string(body)))
}

// EnsureIndex creates the products index with its mapping if it is missing.
func (p *Products) EnsureIndex(ctx context.Context) error {
	res, err := p.ES.Indices.Exists([]string{p.IndexName}, p.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch: index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch: index exists: %s", res.Status())
	}

	res, err = p.ES.Indices.Create(p.IndexName,
		p.ES.Indices.Create.WithContext(ctx),
		p.ES.Indices.Create.WithBody(strings.NewReader(productMapping)),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (p *Products) Index(ctx context.Context, prod *models.Product) error {
	doc := document{
		Title:       prod.Title,
		Description: prod.Description,
		Price:       prod.Price,
		CreatedAt:   prod.CreatedAt,
	}
	if prod.Category != nil {
		doc.CategorySlug = prod.Category.Slug
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("elasticsearch: encode: %w", err)
	}

	res, err := p.ES.Index(p.IndexName, &buf,
		p.ES.Index.WithContext(ctx),
		p.ES.Index.WithDocumentID(prod.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

// Search runs a fuzzy match over title and description and returns the ids of
// the matching products, best match first.
func (p *Products) Search(ctx context.Context, q string, offset, limit int) (int64, []uuid.UUID, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"_source":          false,
		"track_total_hits": true,
		"from":             offset,
		"size":             limit,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: encode: %w", err)
	}

	res, err := p.ES.Search(
		p.ES.Search.WithContext(ctx),
		p.ES.Search.WithIndex(p.IndexName),
		p.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: decode: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		id, err := uuid.Parse(h.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return r.Hits.Total.Value, ids, nil
}
