package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	gigStatus map[string]string
	active    map[string]bool
	roles     map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		gigStatus: map[string]string{"g-1": "active"},
		active:    map[string]bool{"u-1": true},
		roles:     map[string]string{"u-1": "fan"},
	}
}

func (m *memStore) SetGigStatus(_ context.Context, id, status string) error {
	if _, ok := m.gigStatus[id]; !ok {
		return ErrNotFound
	}
	m.gigStatus[id] = status
	return nil
}

func (m *memStore) SetUserActive(_ context.Context, id string, active bool) error {
	if _, ok := m.active[id]; !ok {
		return ErrNotFound
	}
	m.active[id] = active
	return nil
}

func (m *memStore) SetUserRole(_ context.Context, id, role string) error {
	if _, ok := m.roles[id]; !ok {
		return ErrNotFound
	}
	m.roles[id] = role
	return nil
}

func (m *memStore) Stats(context.Context) (Stats, error) {
	return Stats{Users: len(m.roles), Gigs: len(m.gigStatus), GigsByCategory: map[string]int{"Design": 1}}, nil
}

func invoke(t *testing.T, fn echo.HandlerFunc, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.Set("user_id", "admin-1")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, fn(c))
	return rec
}

func TestGigModeration(t *testing.T) {
	store := newMemStore()
	h := &Handler{Store: store, Logger: zap.NewNop()}

	rec := invoke(t, h.SuspendGig, "g-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "suspended", store.gigStatus["g-1"])

	rec = invoke(t, h.ApproveGig, "g-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "active", store.gigStatus["g-1"])

	rec = invoke(t, h.SuspendGig, "missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"gig not found"}`, rec.Body.String())
}

func TestUserModeration(t *testing.T) {
	store := newMemStore()
	h := &Handler{Store: store, Logger: zap.NewNop()}

	invoke(t, h.SuspendUser, "u-1")
	assert.False(t, store.active["u-1"])
	invoke(t, h.ActivateUser, "u-1")
	assert.True(t, store.active["u-1"])

	invoke(t, h.PromoteCreator, "u-1")
	assert.Equal(t, "creator", store.roles["u-1"])
	invoke(t, h.DemoteCreator, "u-1")
	assert.Equal(t, "fan", store.roles["u-1"])

	assert.Equal(t, http.StatusBadRequest, invoke(t, h.SuspendUser, "").Code)
}

func TestStats(t *testing.T) {
	h := &Handler{Store: newMemStore(), Logger: zap.NewNop()}
	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.Stats(e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/stats", nil), rec)))
	assert.JSONEq(t, `{"users":1,"gigs":1,"gigs_by_category":{"Design":1}}`, rec.Body.String())
}
