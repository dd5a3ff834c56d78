package hub

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrDecode is matched by every error returned from Decode.
var ErrDecode = errors.New("decode error")

// DecodeError reports input that could not be turned into a Record:
// malformed JSON, wrong field types, or a missing required field.
type DecodeError struct {
	// Msg is a human-readable description of the failure.
	Msg string
	Err error
}

func (e *DecodeError) Error() string {
	return "JSON parse error: " + e.Msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrDecode) match any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// validate checks required keys on the wire structs after unmarshalling.
// Field names in errors are the JSON keys.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts validator errors into a DecodeError.
func validationError(err error) *DecodeError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &DecodeError{Msg: err.Error(), Err: err}
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}

	return &DecodeError{Msg: strings.Join(msgs, "; "), Err: err}
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("missing field `%s`", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// formatFieldPath converts "recordJSON.creators[0].lastName" to
// "creators[0].lastName".
func formatFieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
