package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/crafthub/internal/gig"
)

const maxPricing = 1e10

// Notifier is told about gigs after they are stored.
type Notifier interface {
	NotifyGigCreated(ctx context.Context, gigID, userID, title, category string, createdAt time.Time) error
}

// GigHandler serves the /api/v1/gig routes.
type GigHandler struct {
	Store    GigStore
	Notifier Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

// priceField accepts the price either as a JSON string or a JSON number.
type priceField string

func (p *priceField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = priceField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = priceField(n.String())
	return nil
}

type createGigRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Pricing       priceField `json:"pricing"`
	DeliveryTime  int        `json:"deliveryTime"`
	RevisionCount int        `json:"revisionCount"`
	Tags          []string   `json:"tags"`
	Requirements  string     `json:"requirements"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

// validate checks the request and returns the normalised price.
func (r *createGigRequest) validate() (string, string) {
	if strings.TrimSpace(r.Title) == "" {
		return "", "title is required"
	}
	if r.Category != "" && !gig.IsCategory(r.Category) {
		return "", "category must be one of: " + strings.Join(gig.Categories, ", ")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(string(r.Pricing)), 64)
	if err != nil || math.IsInf(price, 0) || !(price >= 1) {
		return "", "pricing must be a number of at least 1"
	}
	if price >= maxPricing {
		return "", "pricing is too large"
	}
	if r.DeliveryTime < 1 {
		return "", "delivery time must be at least 1 day"
	}
	if r.RevisionCount < 0 {
		return "", "revision count cannot be negative"
	}
	return strconv.FormatFloat(price, 'f', 2, 64), ""
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (h *GigHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// CreateGig lists a new gig for the authenticated user.
func (h *GigHandler) CreateGig(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	role, _ := c.Get("role").(string)

	var req createGigRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}
	pricing, msg := req.validate()
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx := c.Request().Context()
	if maxAllowed, limited := listingLimits[role]; limited {
		count, err := h.Store.CountByUser(ctx, uid)
		if err != nil {
			h.Logger.Error("count gigs failed", zap.String("user_id", uid), zap.Error(err))
			return fail(c, http.StatusInternalServerError, "could not create gig")
		}
		if count >= maxAllowed {
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"message": fmt.Sprintf("listing limit reached (%d of %d)", count, maxAllowed),
				"role":    role,
				"max":     maxAllowed,
				"current": count,
			})
		}
	}

	g := Gig{
		ID:               uuid.New().String(),
		UserID:           uid,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Category:         req.Category,
		Pricing:          pricing,
		DeliveryTimeDays: req.DeliveryTime,
		RevisionCount:    req.RevisionCount,
		Tags:             cleanTags(req.Tags),
		Requirements:     req.Requirements,
		Status:           "active",
		CreatedAt:        h.now(),
	}
	if err := h.Store.Insert(ctx, g); err != nil {
		h.Logger.Error("insert gig failed", zap.String("user_id", uid), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "could not create gig")
	}

	if h.Notifier != nil {
		if err := h.Notifier.NotifyGigCreated(ctx, g.ID, g.UserID, g.Title, g.Category, g.CreatedAt); err != nil {
			h.Logger.Warn("enqueue gig notification failed", zap.String("gig_id", g.ID), zap.Error(err))
		}
	}
	h.Logger.Info("gig created", zap.String("gig_id", g.ID), zap.String("user_id", uid))

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"gig_id":  g.ID,
		"message": "gig created successfully",
	})
}

// GetUserGigs returns the authenticated user's gigs, newest first.
func (h *GigHandler) GetUserGigs(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	gigs, err := h.Store.ListByUser(c.Request().Context(), uid)
	if err != nil {
		h.Logger.Error("list user gigs failed", zap.String("user_id", uid), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "could not fetch gigs")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "gigs": gigs})
}

// GetAllGigs is public discovery with optional q, category, limit and offset.
func (h *GigHandler) GetAllGigs(c echo.Context) error {
	f := Filter{
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Category: c.QueryParam("category"),
		Limit:    20,
	}
	if l := c.QueryParam("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			f.Limit = v
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			f.Offset = v
		}
	}
	if f.Category != "" && !gig.IsCategory(f.Category) {
		return fail(c, http.StatusBadRequest, "unknown category")
	}

	gigs, err := h.Store.List(c.Request().Context(), f)
	if err != nil {
		h.Logger.Error("list gigs failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "could not fetch gigs")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "gigs": gigs})
}
