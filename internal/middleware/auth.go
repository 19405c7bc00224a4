// Package middleware contains the HTTP middleware applied to protected and
// rate-limited routes.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/property-listing-service/internal/model"
	"github.com/iliyamo/property-listing-service/internal/utils"
)

// userContextKey is where the resolved identity lives inside the echo
// context. Identity is request-scoped only; nothing survives the request.
const userContextKey = "user"

// UserResolver loads the token subject; *repository.UserRepo satisfies it.
type UserResolver interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

// AuthRequired validates the Bearer access token and resolves its subject to
// a live user, rejecting the request otherwise. Missing, malformed and
// expired tokens, as well as a subject that no longer exists, all produce
// the same 401 response on purpose.
func AuthRequired(secret string, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c)
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return unauthorized(c)
			}
			id, err := primitive.ObjectIDFromHex(claims.Subject)
			if err != nil {
				return unauthorized(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByID(ctx, id)
			if err != nil {
				return unauthorized(c)
			}
			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the identity resolved by AuthRequired, or nil on
// unprotected routes.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userContextKey).(*model.User)
	return u
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"message": "Not authorized to access this route",
	})
}
