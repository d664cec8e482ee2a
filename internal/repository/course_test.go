package repository

import (
	"context"
	"testing"

	"github.com/deppfellow/go-courses/internal/storeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func courseDoc(id primitive.ObjectID, name string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "__v", Value: int32(0)},
	}
}

func TestCourseRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("list returns all documents", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		art, music := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			courseDoc(art, "Art"),
			courseDoc(music, "Music"),
		))

		courses, err := repo.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, courses, 2)
		assert.Equal(mt, art, courses[0].ID)
		assert.Equal(mt, "Music", courses[1].Name)
	})

	mt.Run("list on empty collection is not nil", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		courses, err := repo.List(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, courses)
		assert.Empty(mt, courses)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, courseDoc(id, "Art")))

		course, err := repo.GetByID(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, course.ID)
		assert.Equal(mt, "Art", course.Name)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, primitive.NewObjectID())
		assert.True(mt, storeerr.IsNotFound(err))
	})

	mt.Run("create assigns an id", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		course, err := repo.Create(ctx, "Art")
		require.NoError(mt, err)
		assert.False(mt, course.ID.IsZero())
		assert.Equal(mt, "Art", course.Name)
		assert.EqualValues(mt, 0, course.Version)
	})

	mt.Run("create duplicate key", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := repo.Create(ctx, "Art")
		assert.Equal(mt, storeerr.DuplicateKey, storeerr.ErrCode(err))
	})

	mt.Run("update returns the new document", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: courseDoc(id, "Music")},
		))

		course, err := repo.UpdateName(ctx, id, "Music")
		require.NoError(mt, err)
		assert.Equal(mt, id, course.ID)
		assert.Equal(mt, "Music", course.Name)
	})

	mt.Run("update missing document", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: nil},
		))

		_, err := repo.UpdateName(ctx, primitive.NewObjectID(), "Music")
		assert.True(mt, storeerr.IsNotFound(err))
	})

	mt.Run("delete returns the removed document", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: courseDoc(id, "Music")},
		))

		course, err := repo.Delete(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, "Music", course.Name)
	})

	mt.Run("delete missing document", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: nil},
		))

		_, err := repo.Delete(ctx, primitive.NewObjectID())
		assert.True(mt, storeerr.IsNotFound(err))
	})

	mt.Run("command failure is a store fault", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		_, err := repo.List(ctx)
		require.Error(mt, err)
		assert.False(mt, storeerr.IsNotFound(err))
		assert.Equal(mt, storeerr.Other, storeerr.ErrCode(err))
	})
}
