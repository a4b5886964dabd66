package httpserver

import (
	"mime"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/araujodev/zapvitrine/internal/blob"
	"github.com/araujodev/zapvitrine/internal/catalog"
	"github.com/araujodev/zapvitrine/internal/logging"
	"github.com/araujodev/zapvitrine/internal/middleware/auth"
	"github.com/araujodev/zapvitrine/internal/models"
)

type CatalogHTTP struct {
	Catalog *catalog.Service
	Blobs   *blob.FSStore
}

// ProductView hides the price from sessions that may not see it.
type ProductView struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Price       *float64  `json:"price,omitempty"`
	Category    string    `json:"category"`
	ImagePath   string    `json:"image_path"`
}

func emptyReasonString(r catalog.EmptyReason) string {
	switch r {
	case catalog.ReasonCatalogEmpty:
		return "catalog_empty"
	case catalog.ReasonNoCategoryMatch:
		return "no_category_match"
	case catalog.ReasonNoSearchMatch:
		return "no_search_match"
	}
	return ""
}

func toViews(products []models.Product, showPrice bool) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{
			ID:          p.ID,
			Description: p.Description,
			Category:    p.Category,
			ImagePath:   p.ImagePath,
		}
		if showPrice {
			views[i].Price = p.Price
		}
	}
	return views
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	sess := auth.CurrentSession(c)

	var category, term *string
	if v := c.QueryParam("category"); v != "" {
		category = &v
	}
	if v := c.QueryParam("q"); v != "" {
		term = &v
	}

	items, reason := h.Catalog.Filter(category, term)

	return c.JSON(http.StatusOK, echo.Map{
		"products":     toViews(items, sess.Visible()),
		"empty_reason": emptyReasonString(reason),
	})
}

func (h *CatalogHTTP) GetImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "invalid id")
	}
	p, ok := h.Catalog.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, "product not found")
	}

	r, err := h.Blobs.Open(ctx, p.ImagePath)
	if err != nil {
		logging.FromContext(ctx).Error("image open failed", "path", p.ImagePath, "error", err)
		return c.JSON(http.StatusNotFound, "image not found")
	}
	defer r.Close()

	ctype := mime.TypeByExtension(path.Ext(p.ImagePath))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, ctype, r)
}

// RefreshCatalog refetches the product cache from the store.
func (h *CatalogHTTP) RefreshCatalog(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.Catalog.Refresh(ctx); err != nil {
		logging.FromContext(ctx).Error("catalog refresh failed", "error", err)
		return c.JSON(http.StatusBadGateway, "store unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"products": len(h.Catalog.All())})
}
