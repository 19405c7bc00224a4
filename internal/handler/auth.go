package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-listing-service/internal/config"
	"github.com/iliyamo/property-listing-service/internal/middleware"
	"github.com/iliyamo/property-listing-service/internal/model"
	"github.com/iliyamo/property-listing-service/internal/repository"
	"github.com/iliyamo/property-listing-service/internal/utils"
)

// AuthHandler bundles dependencies for the register/login/me endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authData struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates a user and returns a bearer token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "name, email and password are required")
	}
	if !strings.Contains(req.Email, "@") {
		return fail(c, http.StatusBadRequest, "email is invalid")
	}
	if len(req.Password) < 6 {
		return fail(c, http.StatusBadRequest, "password must be at least 6 characters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusBadRequest, "Email already registered")
		}
		return fail(c, http.StatusInternalServerError, "Failed to create user")
	}
	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to issue token")
	}
	return respond(c, http.StatusCreated, authData{Token: token, User: u})
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password answer identically.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return fail(c, http.StatusInternalServerError, "Failed to load user")
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to issue token")
	}
	return respond(c, http.StatusOK, authData{Token: token, User: u})
}

// Me returns the identity resolved by the auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	return respond(c, http.StatusOK, middleware.CurrentUser(c))
}
