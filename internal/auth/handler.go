package auth

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudo-init-do/crafthub/internal/utils"
)

// Handler serves /auth/signup and /auth/login.
type Handler struct {
	Users  UserStore
	Secret []byte
	Logger *zap.Logger
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

// ===== Signup =====
func (h *Handler) Signup(c echo.Context) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fail(c, http.StatusBadRequest, "a valid email is required")
	}
	if len(req.Password) < 6 {
		return fail(c, http.StatusBadRequest, "password must be at least 6 characters")
	}

	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	// Default role is always "fan"
	u := User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         "fan",
		IsActive:     true,
	}
	if err := h.Users.Create(c.Request().Context(), u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return fail(c, http.StatusConflict, "email already exists")
		}
		h.Logger.Error("create user failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "could not create account")
	}

	return h.issue(c, http.StatusCreated, u)
}

// ===== Login =====
func (h *Handler) Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request")
	}

	u, err := h.Users.FindByEmail(c.Request().Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, ErrUserNotFound) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		h.Logger.Error("lookup user failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "server error")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}
	if !u.IsActive {
		return fail(c, http.StatusForbidden, "account suspended")
	}

	return h.issue(c, http.StatusOK, *u)
}

func (h *Handler) issue(c echo.Context, status int, u User) error {
	signed, err := utils.SignToken(h.Secret, u.ID, u.Role, time.Now())
	if err != nil {
		h.Logger.Error("sign token failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "token generation failed")
	}
	return c.JSON(status, TokenResponse{Token: signed})
}
