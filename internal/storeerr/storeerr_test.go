package storeerr

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"no documents", mongo.ErrNoDocuments, NotFound},
		{"duplicate key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}, DuplicateKey},
		{"deadline", context.DeadlineExceeded, Timeout},
		{"network", mongo.CommandError{Message: "connection reset", Labels: []string{"NetworkError"}}, Network},
		{"other", errors.New("boom"), Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCode(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("courses", "find", nil))

	err := Wrap("courses", "findOne", mongo.ErrNoDocuments)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, NotFound, ErrCode(err))
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	// Already classified errors keep their original annotation.
	again := Wrap("other", "op", err)
	var storeErr *Error
	require.True(t, errors.As(again, &storeErr))
	assert.Equal(t, "courses", storeErr.Collection)

	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestEntityName(t *testing.T) {
	assert.Equal(t, "Course", EntityName("courses"))
	assert.Equal(t, "Lab Session", EntityName("lab_sessions"))
	assert.Equal(t, "Record", EntityName(""))
}

func TestHandleError(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(Wrap("courses", "findOne", mongo.ErrNoDocuments)), &httpErr))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Course not found.", httpErr.Message)
		assert.Equal(t, "COURSE_NOT_FOUND", httpErr.Code)
	})

	t.Run("duplicate key", func(t *testing.T) {
		dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(Wrap("courses", "insertOne", dup)), &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "COURSE_ALREADY_EXISTS", httpErr.Code)
	})

	t.Run("store fault does not leak", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(Wrap("courses", "find", errors.New("socket closed: 10.0.0.3"))), &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Internal Server Error", httpErr.Message)
	})

	t.Run("unclassified", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(errors.New("x")), &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	})

	t.Run("http errors pass through", func(t *testing.T) {
		in := errs.NewInvalidIDError()
		assert.Same(t, in, HandleError(in))
	})
}
