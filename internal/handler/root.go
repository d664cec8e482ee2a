package handler

import (
	"net/http"

	"github.com/deppfellow/go-courses/internal/server"
	"github.com/labstack/echo/v4"
)

// Greeting is the body of GET /.
const Greeting = "Hello World !!!"

type RootRequest struct{}

func (r *RootRequest) Validate() error {
	return nil
}

// RootHandler answers the service root.
type RootHandler struct {
	Handler
}

func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{Handler: NewHandler(s)}
}

func (h *RootHandler) Greet() echo.HandlerFunc {
	return HandleText(h.Handler, func(c echo.Context, req *RootRequest) (string, error) {
		return Greeting, nil
	}, http.StatusOK, &RootRequest{})
}
