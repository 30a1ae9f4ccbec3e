package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/middleclass/localstore/internal/currency"
	"github.com/middleclass/localstore/internal/logging"
)

type CurrencyHandler struct{}

func (h *CurrencyHandler) Convert(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "currency.convert")

	amount, err := strconv.ParseFloat(c.QueryParam("amount"), 64)
	if err != nil || amount <= 0 {
		l.Warn("convert_failed", "status", 400, "reason", "bad amount")
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be a positive number")
	}

	from, err := currency.Parse(c.QueryParam("from"))
	if err != nil {
		l.Warn("convert_failed", "status", 400, "reason", "bad source currency", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown source currency")
	}
	to, err := currency.Parse(c.QueryParam("to"))
	if err != nil {
		l.Warn("convert_failed", "status", 400, "reason", "bad target currency", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown target currency")
	}

	result, err := currency.Convert(amount, from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"amount":    amount,
		"from":      from,
		"to":        to,
		"result":    result,
		"formatted": currency.Format(result, to),
		"rate":      currency.Rate(from, to),
		"rate_line": "1 " + currency.Symbol(from) + " = " + currency.Format(currency.Rate(from, to), to),
	})
}
