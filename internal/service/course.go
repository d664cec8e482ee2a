package service

import (
	"context"

	"github.com/deppfellow/go-courses/internal/model"
	"github.com/deppfellow/go-courses/internal/storeerr"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseStore is the persistence contract CourseService needs.
// *repository.CourseRepository implements it.
type CourseStore interface {
	List(ctx context.Context) ([]model.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Course, error)
	Create(ctx context.Context, name string) (*model.Course, error)
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*model.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Course, error)
}

// CourseService implements the course use cases.
//
// A store "no such document" result becomes a 404 client error; any other
// store failure is returned unchanged and rendered as a 500 by the global
// error handler.
type CourseService struct {
	store  CourseStore
	logger *zerolog.Logger
}

func NewCourseService(store CourseStore, logger *zerolog.Logger) *CourseService {
	return &CourseService{store: store, logger: logger}
}

func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.store.List(ctx)
}

func (s *CourseService) Get(ctx context.Context, id primitive.ObjectID) (*model.Course, error) {
	course, err := s.store.GetByID(ctx, id)
	return course, notFound(err)
}

func (s *CourseService) Create(ctx context.Context, name string) (*model.Course, error) {
	course, err := s.store.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("course_id", course.ID.Hex()).Msg("course created")
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id primitive.ObjectID, name string) (*model.Course, error) {
	course, err := s.store.UpdateName(ctx, id, name)
	return course, notFound(err)
}

func (s *CourseService) Delete(ctx context.Context, id primitive.ObjectID) (*model.Course, error) {
	course, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	s.logger.Info().Str("course_id", course.ID.Hex()).Msg("course deleted")
	return course, nil
}

func notFound(err error) error {
	if storeerr.IsNotFound(err) {
		return storeerr.NotFoundError(model.CourseCollection)
	}
	return err
}
