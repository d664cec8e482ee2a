// Package repository handles all interactions with the document store.
//
// It contains the queries used to fetch, persist, update and delete
// documents, and classifies driver errors with storeerr so the service
// layer can tell "no such record" apart from a failed operation.
package repository

import (
	"github.com/deppfellow/go-courses/internal/model"
	"github.com/deppfellow/go-courses/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Course *CourseRepository
}

// NewRepositories builds every repository on top of the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Course: NewCourseRepository(s.DB.Collection(model.CourseCollection)),
	}
}
