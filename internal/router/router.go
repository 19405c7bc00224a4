package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/property-listing-service/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/property-listing-service/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and their
// middleware.  Unauthenticated operations (register, login) live under
// /api/auth, while /api/auth/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, users middleware.UserResolver) {
	g := e.Group("/api/auth")
	// Register a POST endpoint to handle user registration at /api/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /api/auth/login.
	g.POST("/login", a.Login)
	// /api/auth/me returns the authenticated user's profile.  The middleware
	// resolves the token subject against the user store on every request, so
	// tokens for deleted accounts are rejected here like everywhere else.
	g.GET("/me", a.Me, middleware.AuthRequired(jwtSecret, users))
}

// RegisterProperties registers the property catalogue endpoints.  Browsing
// (list, search, detail) is public; create, update and delete require a
// valid access token, with ownership enforced inside the service layer.
func RegisterProperties(e *echo.Echo, h *handler.PropertyHandler, jwtSecret string, users middleware.UserResolver) {
	g := e.Group("/api/properties")
	// Public browse endpoints.  Search is registered before the :id route so
	// that /api/properties/search is never captured as a property id.
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Detail)

	auth := middleware.AuthRequired(jwtSecret, users)
	g.POST("", h.Create, auth)
	g.PUT("/:id", h.Update, auth)
	g.DELETE("/:id", h.Delete, auth)
}

// RegisterFavorites registers the favorites endpoints under /api/favorites.
// Every route requires a valid access token; favorites are always scoped to
// the authenticated user.
func RegisterFavorites(e *echo.Echo, h *handler.FavoriteHandler, jwtSecret string, users middleware.UserResolver) {
	g := e.Group("/api/favorites", middleware.AuthRequired(jwtSecret, users))
	g.POST("/:propertyId", h.Add)
	g.DELETE("/:propertyId", h.Remove)
	g.GET("", h.List)
	g.GET("/check/:propertyId", h.Check)
}
