// Package storeerr specifically handles document store driver errors.
//
// It classifies errors returned by the MongoDB driver (no document,
// duplicate key, timeout, network failure) and converts them into
// application HTTP errors, keeping "no such record" distinct from
// "operation failed".
package storeerr

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Code categorizes a store failure.
type Code string

const (
	// NotFound means the operation matched no document.
	NotFound Code = "not_found"

	// DuplicateKey means a unique index rejected the write.
	DuplicateKey Code = "duplicate_key"

	// Timeout means the operation exceeded its deadline.
	Timeout Code = "timeout"

	// Network means the server could not be reached.
	Network Code = "network"

	// Other covers every remaining driver or decoding failure.
	Other Code = "other"
)

// Error is a classified store error.
type Error struct {
	Code       Code
	Collection string
	Op         string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Collection, e.Op, e.Code, e.driverErr)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// Wrap classifies err and annotates it with the collection and operation.
// It returns nil for a nil err and leaves already classified errors alone.
func Wrap(collection, op string, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		return err
	}

	return &Error{
		Code:       MapCode(err),
		Collection: collection,
		Op:         op,
		driverErr:  err,
	}
}

// MapCode maps a raw driver error to a Code.
func MapCode(err error) Code {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return NotFound
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case mongo.IsTimeout(err):
		return Timeout
	case mongo.IsNetworkError(err):
		return Network
	default:
		return Other
	}
}

// ErrCode reports the Code of a classified error, or Other.
func ErrCode(err error) Code {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return Other
}

// IsNotFound reports whether err is a classified "no such document" error.
func IsNotFound(err error) bool {
	var storeErr *Error
	return errors.As(err, &storeErr) && storeErr.Code == NotFound
}
