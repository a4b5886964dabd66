package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/araujodev/zapvitrine/internal/cart"
	"github.com/araujodev/zapvitrine/internal/catalog"
	"github.com/araujodev/zapvitrine/internal/kvstore"
	"github.com/araujodev/zapvitrine/internal/logging"
	"github.com/araujodev/zapvitrine/internal/middleware/auth"
)

type CartHTTP struct {
	Catalog          *catalog.Service
	Carts            kvstore.Store
	WhatsAppEndpoint string
}

func (h *CartHTTP) load(c echo.Context) *cart.Cart {
	return cart.Load(c.Request().Context(), h.Carts, auth.CurrentSession(c))
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	crt := h.load(c)
	return c.JSON(http.StatusOK, echo.Map{
		"items":       crt.Items(),
		"total_items": crt.TotalItems(),
	})
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == uuid.Nil {
		return c.JSON(http.StatusBadRequest, "product_id required")
	}

	p, ok := h.Catalog.Get(req.ProductID)
	if !ok {
		l.Warn("add_item_not_found", "status", 404, "productID", req.ProductID)
		return c.JSON(http.StatusNotFound, "product not found")
	}

	crt := h.load(c)
	if err := crt.Add(ctx, p); err != nil {
		if errors.Is(err, cart.ErrNotVisible) {
			l.Warn("add_item_denied", "status", 403)
			return c.JSON(http.StatusForbidden, "account is awaiting approval")
		}
		l.Error("add_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("item added to cart", "productID", req.ProductID)
	return c.JSON(http.StatusCreated, echo.Map{
		"items":       crt.Items(),
		"total_items": crt.TotalItems(),
	})
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	crt := h.load(c)
	crt.SetQuantity(ctx, id, req.Quantity)
	return c.JSON(http.StatusOK, echo.Map{
		"items":       crt.Items(),
		"total_items": crt.TotalItems(),
	})
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	crt := h.load(c)
	crt.Remove(ctx, id)
	return c.JSON(http.StatusOK, echo.Map{
		"items":       crt.Items(),
		"total_items": crt.TotalItems(),
	})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	crt := h.load(c)
	crt.Clear(c.Request().Context())
	return c.JSON(http.StatusOK, "cart cleared")
}

// OrderLink compiles the WhatsApp deep link for the current cart.
func (h *CartHTTP) OrderLink(c echo.Context) error {
	crt := h.load(c)
	link := crt.OrderLink(h.WhatsAppEndpoint)
	if link == "" {
		return c.JSON(http.StatusBadRequest, "cart is empty")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"link":    link,
		"message": crt.FormatOrderMessage(),
	})
}
