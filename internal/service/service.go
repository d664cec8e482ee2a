// Package service holds the course use cases.
//
// CourseService turns handler calls (list, get, create, rename, delete)
// into CourseStore operations. A store "no such document" result becomes
// the 404 "Course not found." error; every other store failure is passed
// up unchanged so the global error handler can hide it behind a 500.
package service
