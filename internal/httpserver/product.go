package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/araujodev/zapvitrine/internal/catalog"
	"github.com/araujodev/zapvitrine/internal/logging"
	"github.com/araujodev/zapvitrine/internal/search"
	"github.com/araujodev/zapvitrine/internal/service"
	"github.com/araujodev/zapvitrine/internal/util"
)

type ProductAdminHTTP struct {
	Svc     *service.ProductService
	Catalog *catalog.Service
	Indexer *search.Indexer
}

func (h *ProductAdminHTTP) refresh(c echo.Context) {
	if err := h.Catalog.Refresh(c.Request().Context()); err != nil {
		logging.FromContext(c.Request().Context()).Error("catalog refresh failed", "error", err)
	}
}

func (h *ProductAdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	in := service.NewProduct{
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}

	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			l.Warn("create_product_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, "invalid price")
		}
		in.Price = &price
	}

	fh, err := c.FormFile("image")
	if err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "image is required")
	}
	f, err := fh.Open()
	if err != nil {
		l.Error("create_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	defer f.Close()

	in.Image = f
	in.ImageSize = fh.Size
	in.ImageType = fh.Header.Get("Content-Type")

	p, err := h.Svc.Create(ctx, in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("create_product_error", "status", 502, "error", err)
		return c.JSON(http.StatusBadGateway, "store unavailable")
	}

	h.refresh(c)
	l.Info("product created", "productID", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductAdminHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_not_found", "status", 404, "productID", id)
			return c.JSON(http.StatusNotFound, "product not found")
		}
		l.Error("delete_product_error", "status", 502, "error", err)
		return c.JSON(http.StatusBadGateway, "store unavailable")
	}

	h.refresh(c)
	l.Info("product deleted", "productID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductAdminHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, "q required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, products, err := h.Indexer.Search(ctx, q, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search failed", "error", err)
		return c.JSON(http.StatusBadGateway, "search unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
