package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-listing-service/internal/middleware"
	"github.com/iliyamo/property-listing-service/internal/model"
	"github.com/iliyamo/property-listing-service/internal/repository"
	"github.com/iliyamo/property-listing-service/internal/service"
)

const requestTimeout = 10 * time.Second

type PropertyHandler struct {
	Properties *service.PropertyService
}

func NewPropertyHandler(properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{Properties: properties}
}

// Create handles POST /api/properties.
func (h *PropertyHandler) Create(c echo.Context) error {
	var req model.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	view, err := h.Properties.Create(ctx, &req, middleware.CurrentUser(c))
	switch {
	case errors.Is(err, service.ErrValidation):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrPropertyIDExists):
		return fail(c, http.StatusConflict, "Property with this id already exists")
	case err != nil:
		return fail(c, http.StatusInternalServerError, "Failed to create property")
	}
	return respond(c, http.StatusCreated, view)
}

// List handles GET /api/properties.
func (h *PropertyHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	views, fromCache, err := h.Properties.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to fetch properties")
	}
	return respondCached(c, http.StatusOK, views, len(views), fromCache)
}

// Search handles GET /api/properties/search.
func (h *PropertyHandler) Search(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	views, fromCache, err := h.Properties.Search(ctx, c.QueryParams())
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "Failed to search properties")
	}
	return respondCached(c, http.StatusOK, views, len(views), fromCache)
}

// Detail handles GET /api/properties/:id.
func (h *PropertyHandler) Detail(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	view, fromCache, err := h.Properties.Detail(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Property not found")
		}
		return fail(c, http.StatusInternalServerError, "Failed to fetch property")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": view, "fromCache": fromCache})
}

// Update handles PUT /api/properties/:id.
func (h *PropertyHandler) Update(c echo.Context) error {
	var req model.UpdatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	view, err := h.Properties.Update(ctx, c.Param("id"), &req, middleware.CurrentUser(c))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "Not authorized to update this property")
	case errors.Is(err, service.ErrValidation):
		return fail(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return fail(c, http.StatusInternalServerError, "Failed to update property")
	}
	return respond(c, http.StatusOK, view)
}

// Delete handles DELETE /api/properties/:id.
func (h *PropertyHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	err := h.Properties.Delete(ctx, c.Param("id"), middleware.CurrentUser(c))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "Not authorized to delete this property")
	case err != nil:
		return fail(c, http.StatusInternalServerError, "Failed to delete property")
	}
	return respond(c, http.StatusOK, echo.Map{})
}
