package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/araujodev/zapvitrine/internal/logging"
	"github.com/araujodev/zapvitrine/internal/models"
	"github.com/araujodev/zapvitrine/internal/service"
)

type UserAdminHTTP struct {
	Svc *service.UserService
}

func (h *UserAdminHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	var filter *models.Status
	if v := c.QueryParam("status"); v != "" {
		status := models.Status(v)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, "unknown status")
		}
		filter = &status
	}

	users, err := h.Svc.List(ctx, filter)
	if err != nil {
		logging.FromContext(ctx).Error("list users failed", "error", err)
		return c.JSON(http.StatusBadGateway, "store unavailable")
	}
	return c.JSON(http.StatusOK, users)
}

// SetStatus moves an account through the approval workflow.
func (h *UserAdminHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.status")

	uid := c.Param("uid")

	var req struct {
		Status models.Status `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SetStatus(ctx, uid, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("set_status_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("set_status_not_found", "status", 404, "uid", uid)
			return c.JSON(http.StatusNotFound, "user not found")
		default:
			l.Error("set_status_error", "status", 502, "error", err)
			return c.JSON(http.StatusBadGateway, "store unavailable")
		}
	}

	l.Info("user status changed", "uid", uid, "new_status", req.Status)
	return c.JSON(http.StatusOK, echo.Map{"uid": uid, "status": req.Status})
}
