// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or minimum lengths) defined in struct tags
// and turns validation failures into field errors whose
// messages the client can show as is.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,min=3"`)
//   - Implement Validate() error that calls validation.Struct(req)
//   - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// It covers rules that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// MessageMalformedBody is returned when the request body is not valid JSON.
const MessageMalformedBody = "Malformed JSON body"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON key rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// notempty rejects the empty string while letting "required" decide
	// about absent keys.
	_ = v.RegisterValidation("notempty", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() != reflect.String || fl.Field().Len() > 0
	})

	return v
}

// Struct runs the tag rules of s. It is meant to be called from Validate methods.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. Path parameters are bound through `param` tags.
//  2. For methods with a body, the JSON body is split into its members.
//     A missing body, or one that is not declared as JSON, is treated as an
//     empty object. Members are matched to the payload's `json` tags by exact
//     key; only matched members are decoded into payload.
//  3. payload.Validate() applies the field rules.
//  4. Keys the payload does not declare are rejected.
//
// The first failure is returned as a 400 *errs.HTTPError whose message is
// the first field error.
//
// NOTE: payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := (&echo.DefaultBinder{}).BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError("Invalid path parameters", false, nil, nil)
	}

	if !hasBody(c.Request().Method) {
		return validateStruct(payload)
	}

	raw, err := readBody(c.Request())
	if err != nil {
		return errs.NewBadRequestError(MessageMalformedBody, true, strPtr(errs.CodeMalformedBody), nil)
	}

	unknown, err := decodeBody(raw, payload)
	if err != nil {
		return err
	}

	if err := validateStruct(payload); err != nil {
		return err
	}

	if len(unknown) > 0 {
		return errs.ValidationError(toFieldErrors(CustomValidationErrors{
			{Field: unknown[0], Message: fmt.Sprintf("%q is not allowed", unknown[0])},
		}))
	}
	return nil
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.ContentLength == 0 {
		return []byte("{}"), nil
	}

	ctype := req.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return []byte("{}"), nil
	}

	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []byte("{}"), nil
	}
	return raw, nil
}

// member is one key/value pair of a JSON object, in document order.
type member struct {
	key   string
	value json.RawMessage
}

// decodeBody decodes the members of raw whose keys exactly match a json tag
// of payload, and returns the keys that match none, in document order.
func decodeBody(raw []byte, payload any) ([]string, error) {
	if !json.Valid(raw) {
		return nil, errs.NewBadRequestError(MessageMalformedBody, true, strPtr(errs.CodeMalformedBody), nil)
	}
	if raw[0] != '{' {
		return nil, fieldError("value", `"value" must be of type object`)
	}

	members, err := objectMembers(raw)
	if err != nil {
		return nil, errs.NewBadRequestError(MessageMalformedBody, true, strPtr(errs.CodeMalformedBody), nil)
	}

	fields := jsonFields(reflect.TypeOf(payload))
	known := make(map[string]json.RawMessage, len(members))
	var unknown []string

	for _, m := range members {
		if _, ok := fields[m.key]; !ok {
			unknown = append(unknown, m.key)
			continue
		}
		known[m.key] = m.value
	}

	// null is not a value of any declared type.
	for _, m := range members {
		if value, ok := known[m.key]; ok && bytes.Equal(value, []byte("null")) {
			return nil, fieldError(m.key, fmt.Sprintf("%q must be %s", m.key, describeKind(fields[m.key])))
		}
	}

	filtered, err := json.Marshal(known)
	if err != nil {
		return nil, errs.NewBadRequestError(MessageMalformedBody, true, strPtr(errs.CodeMalformedBody), nil)
	}

	if err := json.Unmarshal(filtered, payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fieldError(typeErr.Field, fmt.Sprintf("%q must be %s", typeErr.Field, describeKind(typeErr.Type)))
		}
		return nil, errs.NewBadRequestError(MessageMalformedBody, true, strPtr(errs.CodeMalformedBody), nil)
	}

	return unknown, nil
}

// objectMembers splits a JSON object into its members. Duplicate keys are
// kept; the last one wins when decoded.
func objectMembers(raw []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: bytes.TrimSpace(value)})
	}
	return members, nil
}

// jsonFields maps the exact json key of every decodable field of t to its type.
func jsonFields(t reflect.Type) map[string]reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fields := make(map[string]reflect.Type)
	if t.Kind() != reflect.Struct {
		return fields
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = f.Type
	}
	return fields
}

func describeKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "of type object"
	}
}

func fieldError(field, message string) *errs.HTTPError {
	return errs.ValidationError([]errs.FieldError{{Field: field, Error: message}})
}

func strPtr(s string) *string {
	return &s
}
