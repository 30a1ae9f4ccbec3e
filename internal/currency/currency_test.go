package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	got, err := Convert(1000, INR, USD)
	require.NoError(t, err)
	assert.InDelta(t, 12, got, 1e-9)

	got, err = Convert(1000, INR, JPY)
	require.NoError(t, err)
	assert.InDelta(t, 1800, got, 1e-9)

	// Routing through the base: USD -> EUR goes via INR.
	got, err = Convert(12, USD, EUR)
	require.NoError(t, err)
	assert.InDelta(t, 11, got, 1e-9)

	_, err = Convert(1, Code("XXX"), USD)
	require.Error(t, err)
	_, err = Convert(1, USD, Code("XXX"))
	require.Error(t, err)
}

func TestRate(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.012, Rate(INR, USD), 1e-9)
	assert.InDelta(t, 150, Rate(USD, JPY), 1e-9)
	assert.InDelta(t, 1, Rate(EUR, EUR), 1e-9)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount float64
		code   Code
		want   string
	}{
		{"usd two decimals", 12, USD, "$12.00"},
		{"usd rounds", 12.345, USD, "$12.35"},
		{"usd grouping", 1234.5, USD, "$1,234.50"},
		{"eur", 11, EUR, "€11.00"},
		{"gbp", 9.5, GBP, "£9.50"},
		{"jpy whole yen", 1800, JPY, "¥1,800"},
		{"jpy rounds fraction away", 1800.6, JPY, "¥1,801"},
		{"inr indian grouping", 123456, INR, "₹1,23,456.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Format(tt.amount, tt.code))
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"INR", "USD", "EUR", "GBP", "JPY"} {
		c, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, Code(s), c)
		assert.NotEmpty(t, Symbol(c))
		assert.NotEmpty(t, Name(c))
	}

	_, err := Parse("usd")
	require.Error(t, err, "codes are upper-case only")
	_, err = Parse("")
	require.Error(t, err)
}
