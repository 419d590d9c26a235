package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
)

// maxBodyBytes bounds admin payloads. Blog bodies with many blocks are the
// largest thing we accept.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	// prices are validated as numbers so min/max apply
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// DecodeJSONBody decodes the request body into dest and runs struct
// validation. Unknown fields are ignored so clients can round-trip the DTOs
// they received.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	if r.Body == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() {
		io.Copy(io.Discard, body)
	}()

	if err := json.NewDecoder(body).Decode(dest); err != nil {
		return decodeError(err)
	}
	return ValidateStruct(dest)
}

// ValidateStruct runs the validate tags on v and reports the first failing
// field as the message with every failure in details.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body must be valid JSON")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body has the wrong shape")
		}
		msg := fmt.Sprintf("%s must be a %s", field, jsonKind(typeErr.Type))
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, msg).WithDetails(map[string]string{field: msg})
	case errors.As(err, &maxErr):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body is too large")
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		if t.PkgPath() == "github.com/shopspring/decimal" {
			return "number"
		}
		return "object"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}
	return "valid value"
}

func formatValidationErrors(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	var fields pkgerrors.FieldErrors
	for _, fieldErr := range errs {
		path := fieldPath(fieldErr)
		fields.Add(path, validationMessage(path, fieldErr))
	}
	return fields.Err()
}

// fieldPath is the JSON path of the failing field, e.g. variants[1].name.
// The namespace starts with the Go type name of the decoded struct.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(name string, fe validator.FieldError) string {
	tag := fe.Tag()
	switch {
	case tag == "required", strings.HasPrefix(tag, "required_"):
		return name + " is required"
	case tag == "min":
		return minMessage(name, fe)
	case tag == "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case tag == "email":
		return name + " must be a valid email"
	case strings.HasPrefix(tag, "url"), strings.HasPrefix(tag, "http_url"):
		return name + " must be a valid URL"
	case tag == "oneof":
		return fmt.Sprintf("%s must be one of %s", name, strings.Join(strings.Fields(fe.Param()), ", "))
	}
	return name + " is invalid"
}

func minMessage(name string, fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if fe.Param() == "1" {
			return name + " must contain at least one item"
		}
		return fmt.Sprintf("%s must contain at least %s items", name, fe.Param())
	case reflect.String:
		if fe.Param() == "1" {
			return name + " must not be empty"
		}
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	}
	if fe.Param() == "0" {
		return name + " must be non-negative"
	}
	return fmt.Sprintf("%s must be at least %s", name, fe.Param())
}
