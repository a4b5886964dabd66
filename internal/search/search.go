// Package search keeps the Elasticsearch product index in step with the
// catalog and serves the fuzzy admin search. The storefront's own category
// and substring filtering never goes through here.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/araujodev/zapvitrine/internal/models"
)

func NewClient(addr, user, password string) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{addr},
		Username:  user,
		Password:  password,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		log.Printf("Elasticsearch error response: %s", body)
		return nil, fmt.Errorf("elasticsearch: %s", res.Status())
	}

	return client, nil
}

// Indexer is nil-safe: a nil receiver makes every call a no-op, so the app
// runs without Elasticsearch configured.
type Indexer struct {
	ES    *elasticsearch.Client
	Index string
}

func (ix *Indexer) IndexProduct(ctx context.Context, p models.Product) error {
	if ix == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	res, err := ix.ES.Index(
		ix.Index,
		bytes.NewReader(data),
		ix.ES.Index.WithDocumentID(p.ID.String()),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product: %s", res.Status())
	}
	return nil
}

// DeleteProduct removes the document; an already-missing document is fine.
func (ix *Indexer) DeleteProduct(ctx context.Context, id string) error {
	if ix == nil {
		return nil
	}
	res, err := ix.ES.Delete(
		ix.Index,
		id,
		ix.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete product from index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product from index: %s", res.Status())
	}
	return nil
}

func (ix *Indexer) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if ix == nil {
		return 0, nil, fmt.Errorf("search index is not configured")
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"description^2", "category"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
