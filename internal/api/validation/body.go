package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the JSON field name instead of the Go field name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors aggregates validation failure messages per field.
// All fields are validated independently; messages for distinct fields union together.
type FieldErrors map[string][]string

// Add appends a message to the error list of a field
func (errs FieldErrors) Add(field, message string) {
	errs[field] = append(errs[field], message)
}

// UnmarshalBody parses and decodes a JSON request body and performs the declared
// validations on it. A non-nil FieldErrors return means the body was rejected.
func UnmarshalBody[T any](request *http.Request) (*T, FieldErrors, error) {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, nil, err
	}

	target := new(T)
	if err := json.Unmarshal(body, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, FieldErrors{typeErr.Field: {fmt.Sprintf("Not a valid %s.", typeErr.Type.String())}}, nil
		}
		return nil, FieldErrors{"_schema": {"Invalid JSON body."}}, nil
	}

	return target, Check(target), nil
}

// Check runs the declared constraints of a payload structure and translates the
// violations into per-field messages. It returns nil if the payload is valid.
func Check(value any) FieldErrors {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return FieldErrors{"_schema": {"Invalid input."}}
	}

	errs := FieldErrors{}
	for _, violation := range violations {
		errs.Add(violation.Field(), message(violation))
	}
	return errs
}

func message(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "Missing data for required field."
	case "email":
		return "Not a valid email address."
	case "min":
		return fmt.Sprintf("Shorter than minimum length %s.", violation.Param())
	case "max":
		return fmt.Sprintf("Longer than maximum length %s.", violation.Param())
	default:
		return fmt.Sprintf("Invalid value (%s).", violation.Tag())
	}
}
