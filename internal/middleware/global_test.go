package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/go-courses/internal/config"
	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/deppfellow/go-courses/internal/storeerr"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{Port: "0", CORSAllowedOrigins: []string{"*"}},
		},
		Logger: &logger,
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(newTestServer())

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "http error keeps its message",
			err:    errs.NewInvalidIDError(),
			status: http.StatusBadRequest,
			body:   errs.MessageInvalidIDFormat,
		},
		{
			name:   "not found from store",
			err:    storeerr.NotFoundError("courses"),
			status: http.StatusNotFound,
			body:   "Course not found.",
		},
		{
			name:   "unknown route",
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			body:   MessageRouteNotFound,
		},
		{
			name:   "wrong method",
			err:    echo.ErrMethodNotAllowed,
			status: http.StatusMethodNotAllowed,
			body:   "Method Not Allowed",
		},
		{
			name:   "store fault is hidden",
			err:    storeerr.Wrap("courses", "find", errors.New("connection refused")),
			status: http.StatusInternalServerError,
			body:   "Internal Server Error",
		},
		{
			name:   "unexpected error",
			err:    fmt.Errorf("boom"),
			status: http.StatusInternalServerError,
			body:   "Internal Server Error",
		},
		{
			name:   "duplicate key",
			err:    storeerr.Wrap("courses", "insert", mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}),
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestGlobalErrorHandler_Committed(t *testing.T) {
	global := NewGlobalMiddlewares(newTestServer())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	global.GlobalErrorHandler(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFromError(errs.NewInvalidIDError()))
	assert.Equal(t, http.StatusNotFound, statusFromError(echo.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("x")))
}

func TestRequestID(t *testing.T) {
	e := echo.New()

	t.Run("generates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		var seen string
		err := RequestID()(func(c echo.Context) error {
			seen = GetRequestID(c)
			return nil
		})(c)
		require.NoError(t, err)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("reuses incoming", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, RequestID()(func(c echo.Context) error { return nil })(c))
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestContextEnhancer_StoresLogger(t *testing.T) {
	enhancer := NewContextEnhancer(newTestServer())

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := enhancer.EnhanceContext()(func(c echo.Context) error {
		assert.Same(t, GetLogger(c), LoggerFromContext(c.Request().Context()))
		return nil
	})(c)
	require.NoError(t, err)
}
