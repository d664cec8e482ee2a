package errs

import (
	"net/http"
)

// Application error codes.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidIDFormat  = "INVALID_ID_FORMAT"
	CodeMalformedBody    = "MALFORMED_BODY"
)

// Messages returned verbatim to clients.
const (
	MessageInvalidIDFormat = "Invalid ID format"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports an optional custom code similar to NewBadRequestError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is always the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewInvalidIDError is returned when a path identifier is not a well-formed
// store identifier. It is a client error, distinct from "not found".
func NewInvalidIDError() *HTTPError {
	code := CodeInvalidIDFormat
	return NewBadRequestError(MessageInvalidIDFormat, true, &code, nil)
}

// ValidationError converts a payload validation failure into a 400.
//
// The message is the first field error, the full list is kept in Errors.
func ValidationError(fieldErrors []FieldError) *HTTPError {
	code := CodeValidationFailed
	message := "Validation failed"
	if len(fieldErrors) > 0 {
		message = fieldErrors[0].Error
	}
	return NewBadRequestError(message, true, &code, fieldErrors)
}
