package repository

import (
	"context"

	"github.com/deppfellow/go-courses/internal/model"
	"github.com/deppfellow/go-courses/internal/storeerr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CourseRepository reads and writes Course documents.
// Each method is a single round trip to the store.
type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(coll *mongo.Collection) *CourseRepository {
	return &CourseRepository{coll: coll}
}

// List returns every course in the collection's natural order.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, r.wrap("find", err)
	}

	courses := []model.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, r.wrap("find", err)
	}
	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Course, error) {
	var course model.Course
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&course); err != nil {
		return nil, r.wrap("findOne", err)
	}
	return &course, nil
}

// Create inserts a new course; the identifier is generated client side.
func (r *CourseRepository) Create(ctx context.Context, name string) (*model.Course, error) {
	course := model.NewCourse(name)
	if _, err := r.coll.InsertOne(ctx, course); err != nil {
		return nil, r.wrap("insertOne", err)
	}
	return course, nil
}

// UpdateName overwrites the name and returns the document after the update.
func (r *CourseRepository) UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*model.Course, error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "name", Value: name}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var course model.Course
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&course); err != nil {
		return nil, r.wrap("findOneAndUpdate", err)
	}
	return &course, nil
}

// Delete removes the course and returns its last stored state.
func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Course, error) {
	var course model.Course
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&course); err != nil {
		return nil, r.wrap("findOneAndDelete", err)
	}
	return &course, nil
}

func (r *CourseRepository) wrap(op string, err error) error {
	return storeerr.Wrap(r.coll.Name(), op, err)
}
