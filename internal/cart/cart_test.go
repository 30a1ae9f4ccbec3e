package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/middleclass/localstore/internal/storage"
)

func newTestSession() *Session {
	return NewSession(storage.NewMemory(), "cart_test")
}

func snapA() Snapshot { return Snapshot{ProductID: "A", Name: "Product A", Price: "$10"} }
func snapB() Snapshot { return Snapshot{ProductID: "B", Name: "Product B", Price: "$20"} }

func TestAdd_MergePolicy(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	ctx := context.Background()

	s.Add(ctx, snapA(), PolicyMerge)
	s.Add(ctx, snapB(), PolicyMerge)
	agg := s.Add(ctx, snapA(), PolicyMerge)

	assert.Equal(t, 2, agg.LineCount)
	assert.Equal(t, 3, agg.TotalQuantity)
	assert.Equal(t, float64(40), agg.Total)

	lines := s.Lines(ctx)
	require.Len(t, lines, 2)
	byProduct := map[string]int{}
	for _, l := range lines {
		byProduct[l.ProductID] = l.Quantity
	}
	assert.Equal(t, 2, byProduct["A"])
	assert.Equal(t, 1, byProduct["B"])
}

func TestAdd_AppendPolicy(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	ctx := context.Background()

	s.Add(ctx, snapA(), PolicyAppend)
	agg := s.Add(ctx, snapA(), PolicyAppend)

	assert.Equal(t, 2, agg.LineCount)
	assert.Equal(t, 2, agg.TotalQuantity)
	assert.Equal(t, float64(20), agg.Total)

	lines := s.Lines(ctx)
	require.Len(t, lines, 2)
	assert.NotEqual(t, lines[0].ID, lines[1].ID, "each append opens its own line")
	for _, l := range lines {
		assert.Equal(t, 1, l.Quantity)
	}
}

func TestSetQuantity_FloorClamp(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	ctx := context.Background()

	s.Add(ctx, snapA(), PolicyMerge)
	line := s.Lines(ctx)[0]
	require.Equal(t, 1, line.Quantity)

	agg := s.SetQuantity(ctx, line.ID, -1)
	require.Equal(t, 1, agg.LineCount, "clamping must not remove the line")
	assert.Equal(t, 1, s.Lines(ctx)[0].Quantity)

	agg = s.SetQuantity(ctx, line.ID, 3)
	assert.Equal(t, 4, s.Lines(ctx)[0].Quantity)
	assert.Equal(t, 4, agg.TotalQuantity)
	assert.Equal(t, float64(40), agg.Total)

	// Unknown line ids change nothing.
	agg = s.SetQuantity(ctx, "missing", 5)
	assert.Equal(t, 4, agg.TotalQuantity)
}

func TestRemove_Unconditional(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	ctx := context.Background()

	s.Add(ctx, snapA(), PolicyMerge)
	s.Add(ctx, snapA(), PolicyMerge)
	line := s.Lines(ctx)[0]
	require.Equal(t, 2, line.Quantity)

	agg := s.Remove(ctx, line.ID)
	assert.Equal(t, 0, agg.LineCount, "remove drops the whole line regardless of quantity")
	assert.Empty(t, s.Lines(ctx))

	// Removing again is a no-op.
	agg = s.Remove(ctx, line.ID)
	assert.Equal(t, 0, agg.LineCount)
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	ctx := context.Background()

	s.Add(ctx, snapA(), PolicyAppend)
	s.Add(ctx, snapB(), PolicyAppend)
	s.Clear(ctx)

	assert.Empty(t, s.Lines(ctx))
	assert.Equal(t, float64(0), s.Total(ctx))
}

func TestSessionSurvivesReload(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemory()
	ctx := context.Background()

	first := NewSession(kv, "cart_page")
	first.Add(ctx, snapA(), PolicyMerge)
	first.Add(ctx, snapA(), PolicyMerge)

	// A fresh session over the same key sees the same lines.
	second := NewSession(kv, "cart_page")
	lines := second.Lines(ctx)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, float64(20), second.Total(ctx))
}

func TestSnapshotPriceIsNotLive(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	ctx := context.Background()

	s.Add(ctx, Snapshot{ProductID: "A", Name: "Product A", Price: "₹1,299"}, PolicyMerge)

	// The snapshot keeps the display string captured at add time;
	// totals parse it back out of the stored line.
	line := s.Lines(ctx)[0]
	assert.Equal(t, "₹1,299", line.Price)
	assert.Equal(t, float64(1299), s.Total(ctx))
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		display string
		want    float64
	}{
		{"$10", 10},
		{"$10.50", 10.5},
		{"₹1,299", 1299},
		{"€1,234.56", 1234.56},
		{"free", 0},
		{"", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.display, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParsePrice(tt.display))
		})
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, "cart_bad", []byte("{not json")))

	s := NewSession(kv, "cart_bad")
	assert.NotPanics(t, func() {
		assert.Empty(t, s.Lines(ctx))
		assert.Equal(t, float64(0), s.Total(ctx))
	})
}
