// Package catalog owns the product records: one persisted list per
// category plus a combined cross-category list kept in sync on every
// write. Storage failures degrade to empty reads and no-op writes; the
// catalog never fails a caller because the store did.
package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/middleclass/localstore/internal/logging"
	"github.com/middleclass/localstore/internal/storage"
)

const combinedKey = "products_all"

func categoryKey(c Category) string { return "products_" + string(c) }

type Store struct {
	KV storage.Store
}

func NewStore(kv storage.Store) *Store {
	return &Store{KV: kv}
}

// List returns the products of one category. A category that has never
// been written returns its seed set; a stored empty list stays empty.
func (s *Store) List(ctx context.Context, category Category) []Product {
	var items []Product
	if err := storage.GetJSON(ctx, s.KV, categoryKey(category), &items); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return seedProducts(category)
		}
		logging.FromContext(ctx).Error("catalog_list_degraded",
			"category", category, "error", err)
		return nil
	}
	return items
}

// Save upserts by id within the product's category and mirrors the
// change into the combined list. A product without an id gets one, and
// CreatedAt is stamped once on first save and preserved afterwards.
func (s *Store) Save(ctx context.Context, p Product) Product {
	p.normalizeAttrs()
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	items := s.List(ctx, p.Category)
	idx := indexByID(items, p.ID)
	if idx >= 0 {
		// CreatedAt is stamped once; edits keep the original stamp.
		p.CreatedAt = items[idx].CreatedAt
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		items[idx] = p
	} else {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		items = append(items, p)
	}

	s.persist(ctx, categoryKey(p.Category), items)
	s.upsertCombined(ctx, p)
	return p
}

// Delete removes the id from its category list and from the combined
// list. Unknown ids are a no-op, so deleting twice is safe.
func (s *Store) Delete(ctx context.Context, id string, category Category) {
	items := s.List(ctx, category)
	kept := items[:0]
	for _, p := range items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.persist(ctx, categoryKey(category), kept)

	combined := s.Combined(ctx)
	keptAll := combined[:0]
	for _, p := range combined {
		if p.ID != id {
			keptAll = append(keptAll, p)
		}
	}
	s.persist(ctx, combinedKey, keptAll)
}

// Combined is the denormalized union of every category, the list the
// storefront browse and search read from.
func (s *Store) Combined(ctx context.Context) []Product {
	var items []Product
	if err := storage.GetJSON(ctx, s.KV, combinedKey, &items); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logging.FromContext(ctx).Error("catalog_combined_degraded", "error", err)
		}
		return nil
	}
	return items
}

// Search filters the combined list by a case-insensitive substring
// match on name and description. Callers with a search index configured
// go through that instead; this is the fallback path.
func (s *Store) Search(ctx context.Context, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Combined(ctx)
	}

	var hits []Product
	for _, p := range s.Combined(ctx) {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			hits = append(hits, p)
		}
	}
	return hits
}

type Stats struct {
	PerCategory map[Category]int `json:"per_category"`
	Total       int              `json:"total"`
}

// Stats is recomputed from the lists on every call, it is not stored.
func (s *Store) Stats(ctx context.Context) Stats {
	st := Stats{PerCategory: make(map[Category]int)}
	for _, c := range []Category{CategoryFashion, CategoryPhones, CategoryLaptops} {
		n := len(s.List(ctx, c))
		st.PerCategory[c] = n
		st.Total += n
	}
	return st
}

func (s *Store) upsertCombined(ctx context.Context, p Product) {
	items := s.Combined(ctx)
	idx := indexByID(items, p.ID)
	if idx >= 0 {
		items[idx] = p
	} else {
		items = append(items, p)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	s.persist(ctx, combinedKey, items)
}

func (s *Store) persist(ctx context.Context, key string, items []Product) {
	if items == nil {
		items = []Product{}
	}
	if err := storage.PutJSON(ctx, s.KV, key, items); err != nil {
		logging.FromContext(ctx).Error("catalog_persist_degraded",
			"key", key, "error", err)
	}
}

func indexByID(items []Product, id string) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
