package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-listing-service/internal/middleware"
	"github.com/iliyamo/property-listing-service/internal/repository"
	"github.com/iliyamo/property-listing-service/internal/service"
)

type FavoriteHandler struct {
	Favorites *service.FavoriteService
}

func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{Favorites: favorites}
}

// Add handles POST /api/favorites/:propertyId.
func (h *FavoriteHandler) Add(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	fav, err := h.Favorites.Add(ctx, middleware.CurrentUser(c), c.Param("propertyId"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, repository.ErrDuplicateFavorite):
		return fail(c, http.StatusBadRequest, "Property already in favorites")
	case err != nil:
		return fail(c, http.StatusInternalServerError, "Failed to add favorite")
	}
	return respond(c, http.StatusCreated, fav)
}

// Remove handles DELETE /api/favorites/:propertyId.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	err := h.Favorites.Remove(ctx, middleware.CurrentUser(c), c.Param("propertyId"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "Favorite not found")
	case err != nil:
		return fail(c, http.StatusInternalServerError, "Failed to remove favorite")
	}
	return respond(c, http.StatusOK, echo.Map{})
}

// List handles GET /api/favorites.
func (h *FavoriteHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	views, err := h.Favorites.List(ctx, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to fetch favorites")
	}
	return respondList(c, http.StatusOK, views, len(views))
}

// Check handles GET /api/favorites/check/:propertyId. Absence is a valid
// outcome, so an unknown property id reports false rather than 404.
func (h *FavoriteHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	isFavorite, err := h.Favorites.Check(ctx, middleware.CurrentUser(c), c.Param("propertyId"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to check favorite status")
	}
	return respond(c, http.StatusOK, echo.Map{"isFavorite": isFavorite})
}
