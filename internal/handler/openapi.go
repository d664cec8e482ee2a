package handler

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/deppfellow/go-courses/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static/openapi.json
var openAPIDocument []byte

//go:embed static/openapi.html
var openAPIUI string

// OpenAPIHandler serves the API description and a small UI to try it out.
//
// Both are embedded in the binary. Cache-Control is "no-cache" so clients
// always see the current document.
type OpenAPIHandler struct {
	Handler
}

// NewOpenAPIHandler constructs an OpenAPIHandler with access to shared dependencies.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIDocument writes the OpenAPI 3 document.
func (h *OpenAPIHandler) ServeOpenAPIDocument(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIDocument); err != nil {
		return fmt.Errorf("failed to write OpenAPI document: %w", err)
	}
	return nil
}

// ServeOpenAPIUI serves the HTML page that renders the document.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTML(http.StatusOK, openAPIUI); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}
	return nil
}
