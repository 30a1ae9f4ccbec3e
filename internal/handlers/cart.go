package handlers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/middleclass/localstore/internal/cart"
	"github.com/middleclass/localstore/internal/events"
	"github.com/middleclass/localstore/internal/logging"
	"github.com/middleclass/localstore/internal/storage"
)

// Each storefront page keeps its own cart under its own key, so the
// fashion page and the deals page never see each other's lines.
var variantPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

type CartHandler struct {
	KV       storage.Store
	Producer *events.Producer
}

func (h *CartHandler) session(c echo.Context) (*cart.Session, error) {
	variant := c.Param("variant")
	if !variantPattern.MatchString(variant) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid cart variant")
	}
	return cart.NewSession(h.KV, "cart_"+variant), nil
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicCart, fmt.Sprint(event["variant"]), event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

type cartResponse struct {
	Lines     []cart.Line    `json:"lines"`
	Aggregate cart.Aggregate `json:"aggregate"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.session(c)
	if err != nil {
		return err
	}

	lines := s.Lines(ctx)
	return c.JSON(http.StatusOK, cartResponse{
		Lines:     lines,
		Aggregate: cart.Aggregate{LineCount: len(lines), TotalQuantity: s.TotalQuantity(ctx), Total: s.Total(ctx)},
	})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Price     string `json:"price"`
		Image     string `json:"image"`
		Policy    string `json:"policy"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	policy, err := cart.ParsePolicy(req.Policy)
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "bad policy", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown policy")
	}

	agg := s.Add(ctx, cart.Snapshot{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
	}, policy)

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"variant":   c.Param("variant"),
		"productID": req.ProductID,
		"policy":    policy,
	})

	l.Info("add_to_cart_success", "productID", req.ProductID, "policy", policy)
	return c.JSON(http.StatusOK, agg)
}

func (h *CartHandler) PatchQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.quantity")

	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_quantity_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	agg := s.SetQuantity(ctx, c.Param("line"), req.Delta)

	h.publish(c, map[string]any{
		"type":    "cart_quantity_changed",
		"variant": c.Param("variant"),
		"line":    c.Param("line"),
		"delta":   req.Delta,
	})
	return c.JSON(http.StatusOK, agg)
}

func (h *CartHandler) RemoveLine(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.session(c)
	if err != nil {
		return err
	}

	agg := s.Remove(ctx, c.Param("line"))

	h.publish(c, map[string]any{
		"type":    "cart_line_removed",
		"variant": c.Param("variant"),
		"line":    c.Param("line"),
	})
	return c.JSON(http.StatusOK, agg)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	s, err := h.session(c)
	if err != nil {
		return err
	}

	s.Clear(ctx)

	h.publish(c, map[string]any{
		"type":    "cart_cleared",
		"variant": c.Param("variant"),
	})
	return c.NoContent(http.StatusNoContent)
}
