package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves the /admin moderation routes.
type Handler struct {
	Store  Store
	Logger *zap.Logger
}

// GET /admin/stats
func (h *Handler) Stats(c echo.Context) error {
	st, err := h.Store.Stats(c.Request().Context())
	if err != nil {
		h.Logger.Error("load stats failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "could not load stats"})
	}
	return c.JSON(http.StatusOK, st)
}

// POST /admin/gigs/:id/suspend
func (h *Handler) SuspendGig(c echo.Context) error {
	return h.update(c, "gig", "gig suspended", func(ctx context.Context, id string) error {
		return h.Store.SetGigStatus(ctx, id, "suspended")
	})
}

// POST /admin/gigs/:id/approve
func (h *Handler) ApproveGig(c echo.Context) error {
	return h.update(c, "gig", "gig approved", func(ctx context.Context, id string) error {
		return h.Store.SetGigStatus(ctx, id, "active")
	})
}

// POST /admin/users/:id/suspend
func (h *Handler) SuspendUser(c echo.Context) error {
	return h.update(c, "user", "user suspended", func(ctx context.Context, id string) error {
		return h.Store.SetUserActive(ctx, id, false)
	})
}

// POST /admin/users/:id/activate
func (h *Handler) ActivateUser(c echo.Context) error {
	return h.update(c, "user", "user activated", func(ctx context.Context, id string) error {
		return h.Store.SetUserActive(ctx, id, true)
	})
}

// POST /admin/users/:id/promote_creator
func (h *Handler) PromoteCreator(c echo.Context) error {
	return h.update(c, "user", "user promoted to creator", func(ctx context.Context, id string) error {
		return h.Store.SetUserRole(ctx, id, "creator")
	})
}

// POST /admin/users/:id/demote_creator
func (h *Handler) DemoteCreator(c echo.Context) error {
	return h.update(c, "user", "user demoted to fan", func(ctx context.Context, id string) error {
		return h.Store.SetUserRole(ctx, id, "fan")
	})
}

func (h *Handler) update(c echo.Context, kind, done string, fn func(context.Context, string) error) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": kind + " id required"})
	}
	err := fn(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": kind + " not found"})
	}
	if err != nil {
		h.Logger.Error("admin update failed", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "update failed"})
	}
	h.Logger.Info(done, zap.String("id", id), zap.Any("by", c.Get("user_id")))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": done, "id": id})
}
