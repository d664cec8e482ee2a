package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/deppfellow/go-courses/internal/model"
	"github.com/deppfellow/go-courses/internal/storeerr"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ── mock store ──

type mockCourseStore struct {
	courses map[primitive.ObjectID]*model.Course
	order   []primitive.ObjectID
	err     error
}

func newMockCourseStore() *mockCourseStore {
	return &mockCourseStore{courses: make(map[primitive.ObjectID]*model.Course)}
}

func (m *mockCourseStore) List(_ context.Context) ([]model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.Course{}
	for _, id := range m.order {
		if c, ok := m.courses[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.courses[id]
	if !ok {
		return nil, storeerr.Wrap(model.CourseCollection, "findOne", mongo.ErrNoDocuments)
	}
	copied := *c
	return &copied, nil
}

func (m *mockCourseStore) Create(_ context.Context, name string) (*model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	c := model.NewCourse(name)
	m.courses[c.ID] = c
	m.order = append(m.order, c.ID)
	copied := *c
	return &copied, nil
}

func (m *mockCourseStore) UpdateName(_ context.Context, id primitive.ObjectID, name string) (*model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.courses[id]
	if !ok {
		return nil, storeerr.Wrap(model.CourseCollection, "findOneAndUpdate", mongo.ErrNoDocuments)
	}
	c.Name = name
	copied := *c
	return &copied, nil
}

func (m *mockCourseStore) Delete(_ context.Context, id primitive.ObjectID) (*model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.courses[id]
	if !ok {
		return nil, storeerr.Wrap(model.CourseCollection, "findOneAndDelete", mongo.ErrNoDocuments)
	}
	delete(m.courses, id)
	return c, nil
}

func setupCourseService() (*CourseService, *mockCourseStore) {
	store := newMockCourseStore()
	logger := zerolog.Nop()
	return NewCourseService(store, &logger), store
}

func requireHTTPStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestCourseService_CreateThenGet(t *testing.T) {
	svc, _ := setupCourseService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Art")
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Art", got.Name)
}

func TestCourseService_Get_NotFound(t *testing.T) {
	svc, _ := setupCourseService()

	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	httpErr := requireHTTPStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Course not found.", httpErr.Message)
}

func TestCourseService_Update_Idempotent(t *testing.T) {
	svc, store := setupCourseService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "Art")
	require.NoError(t, err)

	first, err := svc.Update(ctx, created.ID, "Music")
	require.NoError(t, err)
	second, err := svc.Update(ctx, created.ID, "Music")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Music", store.courses[created.ID].Name)
}

func TestCourseService_Update_NotFound(t *testing.T) {
	svc, _ := setupCourseService()

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), "Music")
	requireHTTPStatus(t, err, http.StatusNotFound)
}

func TestCourseService_Delete(t *testing.T) {
	svc, _ := setupCourseService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "Art")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Art", deleted.Name)

	_, err = svc.Get(ctx, created.ID)
	requireHTTPStatus(t, err, http.StatusNotFound)

	_, err = svc.Delete(ctx, created.ID)
	requireHTTPStatus(t, err, http.StatusNotFound)
}

func TestCourseService_List(t *testing.T) {
	svc, _ := setupCourseService()
	ctx := context.Background()

	courses, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)

	_, _ = svc.Create(ctx, "Art")
	_, _ = svc.Create(ctx, "Music")

	courses, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Art", courses[0].Name)
	assert.Equal(t, "Music", courses[1].Name)
}

func TestCourseService_StoreFaultPropagates(t *testing.T) {
	svc, store := setupCourseService()
	store.err = storeerr.Wrap(model.CourseCollection, "findOne", errors.New("connection refused"))

	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	require.Error(t, err)

	var httpErr *errs.HTTPError
	assert.False(t, errors.As(err, &httpErr))
	assert.Equal(t, storeerr.Other, storeerr.ErrCode(err))
}
