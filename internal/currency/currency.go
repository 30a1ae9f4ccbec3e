// Package currency converts display amounts between a closed set of
// currencies using fixed rates. Rates are constants relative to INR;
// nothing here is fetched or persisted.
package currency

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Code string

const (
	INR Code = "INR"
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
)

var rates = map[Code]float64{
	INR: 1,
	USD: 0.012,
	EUR: 0.011,
	GBP: 0.0095,
	JPY: 1.8,
}

var symbols = map[Code]string{
	INR: "₹",
	USD: "$",
	EUR: "€",
	GBP: "£",
	JPY: "¥",
}

var names = map[Code]string{
	INR: "Indian Rupee",
	USD: "US Dollar",
	EUR: "Euro",
	GBP: "British Pound",
	JPY: "Japanese Yen",
}

func Parse(s string) (Code, error) {
	c := Code(s)
	if _, ok := rates[c]; !ok {
		return "", fmt.Errorf("unknown currency %q", s)
	}
	return c, nil
}

func Symbol(c Code) string { return symbols[c] }
func Name(c Code) string   { return names[c] }

// Convert routes through the base currency: amount in `from` becomes
// INR first, then the target.
func Convert(amount float64, from, to Code) (float64, error) {
	if _, ok := rates[from]; !ok {
		return 0, fmt.Errorf("unknown currency %q", from)
	}
	if _, ok := rates[to]; !ok {
		return 0, fmt.Errorf("unknown currency %q", to)
	}
	return amount / rates[from] * rates[to], nil
}

// Rate is the unit rate used for the "1 X = y Y" display line.
func Rate(from, to Code) float64 {
	return rates[to] / rates[from]
}

var (
	englishPrinter = message.NewPrinter(language.English)
	indianPrinter  = message.NewPrinter(language.MustParse("en-IN"))
)

// Format renders an amount with the target currency's symbol and digit
// grouping: Indian grouping for INR, western grouping elsewhere, two
// fraction digits everywhere except JPY which rounds to whole yen.
func Format(amount float64, c Code) string {
	rounded := math.Round(amount*100) / 100

	switch c {
	case JPY:
		return symbols[c] + englishPrinter.Sprint(number.Decimal(
			math.Round(rounded),
			number.MaxFractionDigits(0),
		))
	case INR:
		return symbols[c] + indianPrinter.Sprint(number.Decimal(
			rounded,
			number.MinFractionDigits(2), number.MaxFractionDigits(2),
		))
	default:
		return symbols[c] + englishPrinter.Sprint(number.Decimal(
			rounded,
			number.MinFractionDigits(2), number.MaxFractionDigits(2),
		))
	}
}
