package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func init() {
	// price, cost and quantities go out as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(nullDecimalValue, decimal.NullDecimal{})
		_ = v.RegisterValidation("timestamp", isTimestamp)
		_ = v.RegisterValidation("numeric10_2", fitsNumeric10x2)
	}
}

// --- Timestamps ---

// timestampLayouts are tried in order. A value without a zone is UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp accepts RFC3339 and zone-less ISO 8601 date-times,
// truncated to the microsecond precision the database keeps.
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Truncate(time.Microsecond), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func isTimestamp(fl validator.FieldLevel) bool {
	_, err := ParseTimestamp(fl.Field().String())
	return err == nil
}

// --- numeric(10,2) ---

var numericMax = decimal.New(1, 8)

// nullDecimalValue lets field rules see a NullDecimal as its string form,
// empty when null.
func nullDecimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.NullDecimal); ok {
		if !d.Valid {
			return ""
		}
		return d.Decimal.String()
	}
	return nil
}

// fitsNumeric10x2 reports whether the value fits numeric(10,2) unchanged:
// at most 8 integer digits and 2 decimal places. Null passes.
func fitsNumeric10x2(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.Abs().LessThan(numericMax) && d.Equal(d.Round(2))
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every field of a request body that was rejected.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError converts a gin binding error into a ValidationError.
func NewValidationError(err error) *ValidationError {
	var existing *ValidationError
	if errors.As(err, &existing) {
		return existing
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := &ValidationError{}
		for _, fe := range fieldErrs {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Reason: ruleReason(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &ValidationError{Fields: []FieldError{{
			Field:  field,
			Reason: fmt.Sprintf("expected %s, got %s", typeName(typeErr.Type), typeErr.Value),
		}}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ValidationError{Fields: []FieldError{{Field: "body", Reason: "is not valid JSON"}}}
	}

	if errors.Is(err, io.EOF) {
		return &ValidationError{Fields: []FieldError{{Field: "body", Reason: "is required"}}}
	}

	return &ValidationError{Fields: []FieldError{{Field: "body", Reason: err.Error()}}}
}

func ruleReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "timestamp":
		return "expected timestamp"
	case "numeric10_2":
		return "must have at most 8 integer digits and 2 decimal places"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Struct, reflect.Map:
		return "object"
	}
	return t.String()
}
