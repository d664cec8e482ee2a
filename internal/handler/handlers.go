// Package handler is the first layer after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/deppfellow/go-courses/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// receives one object instead of many.
type Handlers struct {
	Root    *RootHandler    // Root answers GET /.
	Course  *CourseHandler  // Course serves the /api/courses resource.
	Health  *HealthHandler  // Health serves the status endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API description.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:    NewRootHandler(s),
		Course:  NewCourseHandler(s, services.Course),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
