// Package model defines the documents stored by the service.
package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseCollection is the collection holding Course documents.
const CourseCollection = "courses"

// Course is the only resource exposed by the API.
//
// ID is assigned when the document is created and never changes.
// Version is the document version key; it is written as 0 on insert.
type Course struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Name    string             `json:"name" bson:"name"`
	Version int32              `json:"__v" bson:"__v"`
}

// NewCourse returns a Course with a freshly generated identifier.
func NewCourse(name string) *Course {
	return &Course{
		ID:   primitive.NewObjectID(),
		Name: name,
	}
}

// ParseCourseID parses a 24 character hexadecimal identifier.
func ParseCourseID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}
