// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/go-courses/internal/handler"
	"github.com/deppfellow/go-courses/internal/middleware"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route of the service.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// "/api/courses/" and "/api/courses" are the same resource.
	router.Pre(echomiddleware.RemoveTrailingSlash())

	// Order matters: the request id and New Relic transaction must exist
	// before the context enhancer builds the request logger, and the
	// request logger must wrap Recover so panics are logged with a status.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)
	registerCourseRoutes(router, h)

	return router
}
