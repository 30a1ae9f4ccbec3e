package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/middleclass/localstore/internal/catalog"
	"github.com/middleclass/localstore/internal/events"
	"github.com/middleclass/localstore/internal/logging"
	"github.com/middleclass/localstore/internal/notify"
	"github.com/middleclass/localstore/internal/search"
	"github.com/middleclass/localstore/internal/util"
)

type ProductHandler struct {
	Catalog  *catalog.Store
	Index    *search.Index
	Producer *events.Producer
	Notifier *notify.Notifier
}

// productRequest carries the admin form as submitted: numeric fields
// arrive as strings and are coerced, a failed coercion stores zero.
type productRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	OriginalPrice string `json:"originalPrice"`
	Description   string `json:"description"`
	Image         string `json:"image"`
	Stock         string `json:"stock"`
	Status        string `json:"status"`

	Sizes    string `json:"sizes"`
	Colors   string `json:"colors"`
	Material string `json:"material"`
	Type     string `json:"type"`

	Storage string `json:"storage"`
	RAM     string `json:"ram"`
	Display string `json:"display"`

	Processor     string `json:"processor"`
	RAMLaptop     string `json:"ramLaptop"`
	StorageLaptop string `json:"storageLaptop"`
	DisplayLaptop string `json:"displayLaptop"`
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicProducts, fmt.Sprint(event["productID"]), event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	category, err := catalog.ParseCategory(c.Param("category"))
	if err != nil {
		l.Warn("list_products_failed", "status", 400, "reason", "bad category", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}

	items := h.Catalog.List(ctx, category)
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) SaveProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.save")

	category, err := catalog.ParseCategory(c.Param("category"))
	if err != nil {
		l.Warn("save_product_failed", "status", 400, "reason", "bad category", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("save_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.Name == "" {
		h.Notifier.Push(notify.LevelError, "Product name is required!")
		l.Warn("save_product_failed", "status", 400, "reason", "missing name")
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	prod := catalog.Product{
		ID:            req.ID,
		Category:      category,
		Name:          req.Name,
		Price:         coerceFloat(req.Price),
		OriginalPrice: coerceFloat(req.OriginalPrice),
		Description:   req.Description,
		Image:         req.Image,
		Stock:         coerceInt(req.Stock),
		Status:        req.Status,
	}

	switch category {
	case catalog.CategoryFashion:
		prod.Fashion = &catalog.FashionAttrs{
			Sizes:    req.Sizes,
			Colors:   req.Colors,
			Material: req.Material,
			Type:     req.Type,
		}
	case catalog.CategoryPhones:
		prod.Phone = &catalog.PhoneAttrs{
			Storage: req.Storage,
			RAM:     req.RAM,
			Display: req.Display,
		}
	case catalog.CategoryLaptops:
		prod.Laptop = &catalog.LaptopAttrs{
			Processor: req.Processor,
			RAM:       req.RAMLaptop,
			Storage:   req.StorageLaptop,
			Display:   req.DisplayLaptop,
		}
	}

	created := prod.ID == ""
	saved := h.Catalog.Save(ctx, prod)

	if err := h.Index.IndexProduct(ctx, saved); err != nil {
		l.Error("search_index_failed", "productID", saved.ID, "error", err)
	}

	eventType := "product_updated"
	if created {
		eventType = "product_created"
	}
	h.publish(c, map[string]any{
		"type":      eventType,
		"productID": saved.ID,
		"category":  saved.Category,
		"name":      saved.Name,
	})

	h.Notifier.Push(notify.LevelSuccess, "Product saved successfully!")
	l.Info("save_product_success", "productID", saved.ID)
	if created {
		return c.JSON(http.StatusCreated, saved)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	category, err := catalog.ParseCategory(c.Param("category"))
	if err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "bad category", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}
	id := c.Param("id")

	h.Catalog.Delete(ctx, id, category)

	if err := h.Index.DeleteProduct(ctx, id); err != nil {
		l.Error("search_delete_failed", "productID", id, "error", err)
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
		"category":  category,
	})

	h.Notifier.Push(notify.LevelSuccess, "Product deleted successfully!")
	l.Info("delete_product_success", "productID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Stats(c.Request().Context()))
}

// Combined serves the cross-category browse list.
func (h *ProductHandler) Combined(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Combined(c.Request().Context()))
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := search.NormalizeQuery(c.QueryParam("q"))
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	if h.Index.Enabled() && q != "" {
		total, items, err := h.Index.Search(ctx, q, from, limit)
		if err == nil {
			return c.JSON(http.StatusOK, map[string]any{
				"data": items,
				"meta": map[string]any{"page": page, "size": limit, "total": total},
			})
		}
		l.Error("search_degraded", "reason", "index query failed", "error", err)
	}

	items := h.Catalog.Search(ctx, q)
	total := len(items)
	if from > total {
		from = total
	}
	end := from + limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items[from:end],
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}

func coerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func coerceInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
