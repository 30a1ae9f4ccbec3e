// Package cart accumulates purchase intents for one storefront page.
// Each session owns a single storage key and is reloaded from it on
// every call, so a page reload sees the same lines. Prices live on the
// lines as display strings captured at add time; later catalog edits do
// not reach back into the cart.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/middleclass/localstore/internal/logging"
	"github.com/middleclass/localstore/internal/storage"
)

// Policy decides what adding an already-present product does. Merge
// bumps the existing line's quantity, append always opens a new line.
type Policy string

const (
	PolicyMerge  Policy = "merge"
	PolicyAppend Policy = "append"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyMerge, PolicyAppend:
		return Policy(s), nil
	case "":
		return PolicyMerge, nil
	}
	return "", fmt.Errorf("unknown cart policy %q", s)
}

// Snapshot is the product as it looked when the user clicked: display
// fields only, price as the formatted string shown on the page.
type Snapshot struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image,omitempty"`
}

type Line struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Image     string    `json:"image,omitempty"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// Aggregate is what the page header shows after a mutation.
type Aggregate struct {
	LineCount     int     `json:"line_count"`
	TotalQuantity int     `json:"total_quantity"`
	Total         float64 `json:"total"`
}

type Session struct {
	KV  storage.Store
	Key string
}

func NewSession(kv storage.Store, key string) *Session {
	return &Session{KV: kv, Key: key}
}

// Lines loads the current line list. A missing key is an empty cart,
// and a broken value degrades to empty instead of failing the page.
func (s *Session) Lines(ctx context.Context) []Line {
	var lines []Line
	if err := storage.GetJSON(ctx, s.KV, s.Key, &lines); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logging.FromContext(ctx).Error("cart_load_degraded",
				"key", s.Key, "error", err)
		}
		return nil
	}
	return lines
}

// Add applies the policy, persists, and returns the new aggregates.
func (s *Session) Add(ctx context.Context, snap Snapshot, policy Policy) Aggregate {
	lines := s.Lines(ctx)

	if policy == PolicyMerge {
		if i := indexByProduct(lines, snap.ProductID); i >= 0 {
			lines[i].Quantity++
			s.persist(ctx, lines)
			return aggregate(lines)
		}
	}

	lines = append(lines, Line{
		ID:        uuid.NewString(),
		ProductID: snap.ProductID,
		Name:      snap.Name,
		Price:     snap.Price,
		Image:     snap.Image,
		Quantity:  1,
		AddedAt:   time.Now().UTC(),
	})
	s.persist(ctx, lines)
	return aggregate(lines)
}

// SetQuantity adjusts a line by delta, clamped at a floor of 1. Going
// to zero is only possible through Remove.
func (s *Session) SetQuantity(ctx context.Context, lineID string, delta int) Aggregate {
	lines := s.Lines(ctx)
	for i := range lines {
		if lines[i].ID != lineID {
			continue
		}
		lines[i].Quantity += delta
		if lines[i].Quantity < 1 {
			lines[i].Quantity = 1
		}
		s.persist(ctx, lines)
		break
	}
	return aggregate(lines)
}

// Remove drops the line unconditionally. Unknown ids are a no-op.
func (s *Session) Remove(ctx context.Context, lineID string) Aggregate {
	lines := s.Lines(ctx)
	kept := lines[:0]
	for _, l := range lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	s.persist(ctx, kept)
	return aggregate(kept)
}

// Clear empties the cart, the terminal step of the checkout stub.
func (s *Session) Clear(ctx context.Context) {
	s.persist(ctx, nil)
}

func (s *Session) Total(ctx context.Context) float64 {
	return aggregate(s.Lines(ctx)).Total
}

// LineCount is the number of distinct lines; TotalQuantity sums the
// per-line quantities. Pages display one or the other.
func (s *Session) LineCount(ctx context.Context) int {
	return len(s.Lines(ctx))
}

func (s *Session) TotalQuantity(ctx context.Context) int {
	return aggregate(s.Lines(ctx)).TotalQuantity
}

func (s *Session) persist(ctx context.Context, lines []Line) {
	if lines == nil {
		lines = []Line{}
	}
	if err := storage.PutJSON(ctx, s.KV, s.Key, lines); err != nil {
		logging.FromContext(ctx).Error("cart_persist_degraded",
			"key", s.Key, "error", err)
	}
}

func aggregate(lines []Line) Aggregate {
	agg := Aggregate{LineCount: len(lines)}
	for _, l := range lines {
		agg.TotalQuantity += l.Quantity
		agg.Total += ParsePrice(l.Price) * float64(l.Quantity)
	}
	return agg
}

// ParsePrice recovers the numeric amount from a display price string by
// stripping everything except digits and the decimal point, so "₹1,299"
// and "$10.50" both parse.
func ParsePrice(display string) float64 {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

func indexByProduct(lines []Line, productID string) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
