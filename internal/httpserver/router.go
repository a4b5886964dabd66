package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/araujodev/zapvitrine/internal/middleware/auth"
)

type Deps struct {
	Auth    *auth.Middleware
	AuthH   *AuthHTTP
	Catalog *CatalogHTTP
	Cart    *CartHTTP
	Product *ProductAdminHTTP
	Users   *UserAdminHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthH.Register)
	v1.POST("/login", d.AuthH.Login)
	v1.POST("/refresh", d.AuthH.Refresh)
	v1.POST("/logout", d.AuthH.Logout, d.Auth.Resolve)
	v1.GET("/me", d.AuthH.Me, d.Auth.Resolve)

	products := v1.Group("/products", d.Auth.Resolve)
	products.GET("", d.Catalog.ListProducts)
	products.GET("/:id/image", d.Catalog.GetImage)

	cart := v1.Group("/cart", d.Auth.RequireLogin)
	cart.GET("", d.Cart.GetCart)
	cart.POST("/items", d.Cart.AddItem)
	cart.PUT("/items/:id", d.Cart.SetQuantity)
	cart.DELETE("/items/:id", d.Cart.RemoveItem)
	cart.DELETE("", d.Cart.ClearCart)
	cart.GET("/order-link", d.Cart.OrderLink)

	admin := v1.Group("/admin", d.Auth.AdminOnly)
	admin.POST("/products", d.Product.CreateProduct)
	admin.DELETE("/products/:id", d.Product.DeleteProduct)
	admin.POST("/catalog/refresh", d.Catalog.RefreshCatalog)
	admin.GET("/search", d.Product.Search)
	admin.GET("/users", d.Users.ListUsers)
	admin.PUT("/users/:uid/status", d.Users.SetStatus)
}
