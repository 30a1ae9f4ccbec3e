package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Put(ctx, "k", []byte(`{"a":1}`)))
	raw, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(raw))

	// Last write wins, whole-value overwrite.
	require.NoError(t, m.Put(ctx, "k", []byte(`{"a":2}`)))
	raw, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(raw))

	require.NoError(t, m.Del(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is a no-op.
	require.NoError(t, m.Del(ctx, "k"))
}

func TestMemory_ReturnsCopies(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	original := []byte("value")
	require.NoError(t, m.Put(ctx, "k", original))
	original[0] = 'X'

	raw, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "value", string(raw), "stored value must not alias caller memory")

	raw[0] = 'Y'
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "value", string(again))
}

func TestJSONHelpers(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	in := payload{Name: "tshirt", Count: 3}
	require.NoError(t, PutJSON(ctx, m, "p", in))

	var out payload
	require.NoError(t, GetJSON(ctx, m, "p", &out))
	assert.Equal(t, in, out)

	var untouched payload
	err := GetJSON(ctx, m, "absent", &untouched)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, payload{}, untouched)

	require.NoError(t, m.Put(ctx, "bad", []byte("{broken")))
	var target payload
	assert.Error(t, GetJSON(ctx, m, "bad", &target))
}
