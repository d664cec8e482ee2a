package router

import (
	"github.com/deppfellow/go-courses/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerCourseRoutes(r *echo.Echo, h *handler.Handlers) {
	courses := r.Group("/api/courses")

	courses.GET("", h.Course.ListCourses())
	courses.POST("", h.Course.CreateCourse())
	courses.GET("/:id", h.Course.GetCourse())
	courses.PUT("/:id", h.Course.UpdateCourse())
	courses.DELETE("/:id", h.Course.DeleteCourse())
}
