package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/deppfellow/go-courses/internal/model"
	"github.com/deppfellow/go-courses/internal/server"
	"github.com/deppfellow/go-courses/internal/validation"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseService is the business layer the course endpoints call.
// *service.CourseService implements it.
type CourseService interface {
	List(ctx context.Context) ([]model.Course, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Course, error)
	Create(ctx context.Context, name string) (*model.Course, error)
	Update(ctx context.Context, id primitive.ObjectID, name string) (*model.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Course, error)
}

// ListCoursesRequest carries no input.
type ListCoursesRequest struct{}

func (r *ListCoursesRequest) Validate() error {
	return nil
}

// CourseIDRequest addresses a single course by its path identifier.
//
// The identifier format is checked by the handler, not by Validate, so a
// malformed id is reported as "Invalid ID format" rather than a field error.
type CourseIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *CourseIDRequest) Validate() error {
	return nil
}

// CreateCourseRequest is the body of POST /api/courses.
type CreateCourseRequest struct {
	Name *string `json:"name" validate:"required,notempty,min=3"`
}

func (r *CreateCourseRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateCourseRequest is the body of PUT /api/courses/:id.
type UpdateCourseRequest struct {
	ID   string  `param:"id" json:"-"`
	Name *string `json:"name" validate:"required,notempty,min=3"`
}

func (r *UpdateCourseRequest) Validate() error {
	return validation.Struct(r)
}

// CourseHandler serves the /api/courses endpoints.
type CourseHandler struct {
	Handler
	courses CourseService
}

func NewCourseHandler(s *server.Server, courses CourseService) *CourseHandler {
	return &CourseHandler{
		Handler: NewHandler(s),
		courses: courses,
	}
}

// ListCourses handles GET /api/courses.
func (h *CourseHandler) ListCourses() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *ListCoursesRequest) ([]model.Course, error) {
		return h.courses.List(c.Request().Context())
	}, http.StatusOK, &ListCoursesRequest{})
}

// GetCourse handles GET /api/courses/:id.
func (h *CourseHandler) GetCourse() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *CourseIDRequest) (*model.Course, error) {
		id, err := parseID(req.ID)
		if err != nil {
			return nil, err
		}
		return h.courses.Get(c.Request().Context(), id)
	}, http.StatusOK, &CourseIDRequest{})
}

// CreateCourse handles POST /api/courses. The created course is returned with 200.
func (h *CourseHandler) CreateCourse() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *CreateCourseRequest) (*model.Course, error) {
		return h.courses.Create(c.Request().Context(), *req.Name)
	}, http.StatusOK, &CreateCourseRequest{})
}

// UpdateCourse handles PUT /api/courses/:id.
//
// The body is validated before the identifier is checked.
func (h *CourseHandler) UpdateCourse() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *UpdateCourseRequest) (*model.Course, error) {
		id, err := parseID(req.ID)
		if err != nil {
			return nil, err
		}
		return h.courses.Update(c.Request().Context(), id, *req.Name)
	}, http.StatusOK, &UpdateCourseRequest{})
}

// DeleteCourse handles DELETE /api/courses/:id and returns the removed course.
func (h *CourseHandler) DeleteCourse() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *CourseIDRequest) (*model.Course, error) {
		id, err := parseID(req.ID)
		if err != nil {
			return nil, err
		}
		return h.courses.Delete(c.Request().Context(), id)
	}, http.StatusOK, &CourseIDRequest{})
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := model.ParseCourseID(raw)
	if err != nil {
		return primitive.NilObjectID, errs.NewInvalidIDError()
	}
	return id, nil
}
