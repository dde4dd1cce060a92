package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// OfferIndex mirrors offers into an Elasticsearch index for full-text search.
// MongoDB stays the source of truth; search only yields ids.
type OfferIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewOfferIndex(es *elasticsearch.Client, index string) *OfferIndex {
	return &OfferIndex{ES: es, Index: index}
}

type offerDocument struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Type        string    `json:"type"`
	Amenities   []string  `json:"amenities"`
	Price       int       `json:"price"`
	IsPremium   bool      `json:"is_premium"`
	Date        time.Time `json:"date"`
}

func (ix *OfferIndex) IndexOffer(ctx context.Context, o *entity.Offer) error {
	doc := offerDocument{
		Title:       o.Title,
		Description: o.Description,
		City:        o.City,
		Type:        string(o.Type),
		Amenities:   o.Amenities,
		Price:       o.Price,
		IsPremium:   o.IsPremium,
		Date:        o.Date,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: ix.Index, DocumentID: o.ID.Hex(), Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (ix *OfferIndex) DeleteOffer(ctx context.Context, id primitive.ObjectID) error {
	req := esapi.DeleteRequest{Index: ix.Index, DocumentID: id.Hex()}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// SearchOffers runs a multi_match query and returns matching offer ids by relevance.
func (ix *OfferIndex) SearchOffers(ctx context.Context, q string, size int) ([]primitive.ObjectID, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"title^3", "city^2", "description", "amenities", "type"},
				"fuzziness": "AUTO",
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(c),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if id, err := primitive.ObjectIDFromHex(h.ID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
