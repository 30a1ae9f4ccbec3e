// Package search keeps the combined product list mirrored into an
// Elasticsearch index and serves storefront queries from it. The index
// is optional; callers fall back to catalog.Store.Search when no
// client is configured.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/middleclass/localstore/internal/catalog"
	"github.com/middleclass/localstore/internal/config"
)

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	if cfg.ES_URL == "" {
		return nil, nil
	}

	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}
	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("search: create client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("search: cluster info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: cluster info: %s", res.Status())
	}
	return client, nil
}

type Index struct {
	ES   *elasticsearch.Client
	Name string
}

func (i *Index) Enabled() bool { return i != nil && i.ES != nil }

func (i *Index) IndexProduct(ctx context.Context, p catalog.Product) error {
	if !i.Enabled() {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("search: encode product: %w", err)
	}

	res, err := i.ES.Index(
		i.Name,
		&buf,
		i.ES.Index.WithDocumentID(p.ID),
		i.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index product: %s", res.Status())
	}
	return nil
}

func (i *Index) DeleteProduct(ctx context.Context, id string) error {
	if !i.Enabled() {
		return nil
	}

	res, err := i.ES.Delete(
		i.Name,
		id,
		i.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: delete product: %w", err)
	}
	defer res.Body.Close()
	// 404 means the document was never indexed, which is fine for an
	// idempotent delete.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete product: %s", res.Status())
	}
	return nil
}

func (i *Index) Search(ctx context.Context, query string, from, size int) (int64, []catalog.Product, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := i.ES.Search(
		i.ES.Search.WithContext(ctx),
		i.ES.Search.WithIndex(i.Name),
		i.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: query: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source catalog.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	items := make([]catalog.Product, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		items = append(items, h.Source)
	}
	return r.Hits.Total.Value, items, nil
}

// NormalizeQuery trims and lowercases the free-text input the same way
// for both the index path and the in-memory fallback.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
