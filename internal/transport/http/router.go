package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/middleclass/localstore/internal/handlers"
	authmw "github.com/middleclass/localstore/internal/middleware/auth"
)

type Deps struct {
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	AuthHandler     *handlers.AuthHandler
	CurrencyHandler *handlers.CurrencyHandler
	Gate            *authmw.GateMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.GET("/session", d.AuthHandler.Session)
	v1.GET("/notices", d.AuthHandler.Notices)

	admin := v1.Group("/admin", d.Gate.RequireAdmin)
	admin.GET("/products/:category", d.ProductHandler.ListProducts)
	admin.POST("/products/:category", d.ProductHandler.SaveProduct)
	admin.DELETE("/products/:category/:id", d.ProductHandler.DeleteProduct)
	admin.GET("/stats", d.ProductHandler.Stats)

	v1.GET("/products", d.ProductHandler.Combined)
	v1.GET("/products/:category", d.ProductHandler.ListProducts)
	v1.GET("/search", d.ProductHandler.SearchProducts)

	carts := v1.Group("/cart/:variant")
	carts.GET("", d.CartHandler.GetCart)
	carts.POST("", d.CartHandler.AddToCart)
	carts.PATCH("/:line", d.CartHandler.PatchQuantity)
	carts.DELETE("/:line", d.CartHandler.RemoveLine)
	carts.DELETE("", d.CartHandler.ClearCart)

	v1.GET("/currency/convert", d.CurrencyHandler.Convert)
}
