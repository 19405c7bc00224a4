// Package handler implements the HTTP endpoints. Every response uses the
// same envelope: {success:true, data|count+data, fromCache?} on success,
// {success:false, message} on failure.
package handler

import "github.com/labstack/echo/v4"

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func respondList(c echo.Context, status int, data interface{}, count int) error {
	return c.JSON(status, echo.Map{"success": true, "count": count, "data": data})
}

// respondCached tags cache-aside reads with where the payload came from.
func respondCached(c echo.Context, status int, data interface{}, count int, fromCache bool) error {
	return c.JSON(status, echo.Map{
		"success":   true,
		"count":     count,
		"data":      data,
		"fromCache": fromCache,
	})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}
