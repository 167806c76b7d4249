package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudo-init-do/crafthub/internal/utils"
)

type memUsers struct {
	byEmail map[string]User
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) Create(_ context.Context, u User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	m.byEmail[u.Email] = u
	return nil
}

var secret = []byte("auth-secret")

func newHandler() (*Handler, *memUsers) {
	users := &memUsers{byEmail: map[string]User{}}
	return &Handler{Users: users, Secret: secret, Logger: zap.NewNop(), Cost: bcrypt.MinCost}, users
}

func call(t *testing.T, fn echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, fn(e.NewContext(req, rec)))
	return rec
}

func tokenFrom(t *testing.T, rec *httptest.ResponseRecorder) *utils.Claims {
	t.Helper()
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	claims, err := utils.ParseToken(secret, resp.Token)
	require.NoError(t, err)
	return claims
}

func TestSignupThenLogin(t *testing.T) {
	h, users := newHandler()

	rec := call(t, h.Signup, `{"name":"Ada","email":" Ada@Example.com ","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	claims := tokenFrom(t, rec)
	assert.Equal(t, "fan", claims.Role)

	stored := users.byEmail["ada@example.com"]
	assert.Equal(t, claims.UserID, stored.ID)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	rec = call(t, h.Login, `{"email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stored.ID, tokenFrom(t, rec).UserID)
}

func TestSignupValidation(t *testing.T) {
	h, _ := newHandler()

	rec := call(t, h.Signup, `{"name":"","email":"a@b.co","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, h.Signup, `{"name":"A","email":"nope","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, h.Signup, `{"name":"A","email":"a@b.co","password":"123"}`)
	assert.JSONEq(t, `{"success":false,"message":"password must be at least 6 characters"}`, rec.Body.String())

	require.Equal(t, http.StatusCreated, call(t, h.Signup, `{"name":"A","email":"a@b.co","password":"secret1"}`).Code)
	rec = call(t, h.Signup, `{"name":"A","email":"a@b.co","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginFailures(t *testing.T) {
	h, users := newHandler()
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	users.byEmail["s@x.io"] = User{ID: "u-s", Email: "s@x.io", PasswordHash: string(hash), Role: "creator", IsActive: false}

	rec := call(t, h.Login, `{"email":"missing@x.io","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h.Login, `{"email":"s@x.io","password":"wrong"}`)
	assert.JSONEq(t, `{"success":false,"message":"invalid credentials"}`, rec.Body.String())

	rec = call(t, h.Login, `{"email":"s@x.io","password":"right-pass"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "account suspended")
}
