package storeerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/go-courses/internal/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generateErrorCode creates an application error code from a collection
// and failure kind, e.g. courses + NotFound => COURSE_NOT_FOUND.
func generateErrorCode(collection string, code Code) string {
	domain := strings.ToUpper(singular(collection))
	if domain == "" {
		domain = "RECORD"
	}

	action := "ERROR"
	switch code {
	case NotFound:
		action = "NOT_FOUND"
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// EntityName turns a collection name into the entity it holds,
// e.g. "courses" -> "Course", "lab_sessions" -> "Lab Session".
func EntityName(collection string) string {
	entity := singular(collection)
	if entity == "" {
		return "Record"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(entity, "_", " "))
}

func singular(name string) string {
	if strings.HasSuffix(name, "s") && len(name) > 1 {
		return name[:len(name)-1]
	}
	return name
}

// NotFoundError is the client error for a well-formed identifier that
// matches no document in collection.
func NotFoundError(collection string) *errs.HTTPError {
	code := generateErrorCode(collection, NotFound)
	return errs.NewNotFoundError(fmt.Sprintf("%s not found.", EntityName(collection)), true, &code)
}

// HandleError converts a store error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - NotFound: 404 with the entity name
//   - DuplicateKey: 400
//   - anything else: generic 500, driver details never reach the client
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var storeErr *Error
	if !errors.As(err, &storeErr) {
		return errs.NewInternalServerError()
	}

	switch storeErr.Code {
	case NotFound:
		return NotFoundError(storeErr.Collection)

	case DuplicateKey:
		code := generateErrorCode(storeErr.Collection, DuplicateKey)
		message := fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(EntityName(storeErr.Collection)))
		return errs.NewBadRequestError(message, true, &code, nil)

	default:
		return errs.NewInternalServerError()
	}
}
