package service

import (
	"github.com/deppfellow/go-courses/internal/repository"
	"github.com/deppfellow/go-courses/internal/server"
)

type Services struct {
	Course *CourseService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Course: NewCourseService(repos.Course, s.Logger),
	}
}
