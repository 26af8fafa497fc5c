package goshape

import (
	"errors"
	"fmt"
	"strings"
)

// Value codes, reported in a ValueInvalidError when a value does not fit a
// well-formed schema.
const (
	CodeRequired         = "required"
	CodeNotNull          = "not_null"
	CodeNotEmptyObject   = "not_empty_object"
	CodeInvalidType      = "invalid_type"
	CodeEmpty            = "empty"
	CodeTooLong          = "too_long"
	CodePattern          = "pattern"
	CodeNotIntegerString = "not_integer_string"
	CodeNotInteger       = "not_integer"
	CodeOutOfRange       = "out_of_range"
	CodeInvalidDate      = "invalid_date"
	CodeInvalidClass     = "invalid_class"
	CodeInvalidEnum      = "invalid_enum"
	CodeExpectedArray    = "expected_array"
	CodeExpectedObject   = "expected_object"
	CodeUnknownKey       = "unknown_key"
)

// Declaration codes, reported in a SchemaInvalidError. All carry the
// "schema_" prefix.
const (
	CodeSchemaOptionalTarget = "schema_optional_target"
	CodeSchemaArrayLength    = "schema_array_length"
	CodeSchemaEmptyObject    = "schema_empty_object"
	CodeSchemaNotBuilt       = "schema_not_built"
	CodeSchemaNoType         = "schema_no_type"
	CodeSchemaUnknownType    = "schema_unknown_type"
	CodeSchemaNotField       = "schema_not_field"
)

var (
	// ErrExtractRoot is returned by Extract when the schema root is neither an
	// object node nor an empty-object leaf.
	ErrExtractRoot = errors.New("goshape: extraction requires an object schema at the root")
	// ErrNilSection is returned by Section when the selector yields nil.
	ErrNilSection = errors.New("goshape: section selector returned nil")
)

// Issue describes one failure.
type Issue struct {
	Schema    any      // The schema (declaration or Node) being checked. Safe to log.
	FieldKeys []string // Object keys and "[i]" array positions from the root.
	Code      string   // One of the codes listed above.
	Reason    string
}

// Path renders FieldKeys as a.b[0].c. The root renders as "".
func (i Issue) Path() string {
	b := &strings.Builder{}
	for n, k := range i.FieldKeys {
		if n > 0 && !strings.HasPrefix(k, "[") {
			b.WriteByte('.')
		}
		b.WriteString(k)
	}
	return b.String()
}

func (i Issue) describe(prefix string) string {
	if p := i.Path(); p != "" {
		return fmt.Sprintf("goshape: %s at %s: %s", prefix, p, i.Reason)
	}
	return fmt.Sprintf("goshape: %s: %s", prefix, i.Reason)
}

// SchemaInvalidError reports a malformed schema declaration.
type SchemaInvalidError struct {
	Issue Issue
}

func (e *SchemaInvalidError) Error() string { return e.Issue.describe("invalid schema") }

// ValueInvalidError reports a value rejected by a well-formed schema. The
// rejected value may hold user data, so Error never includes it.
type ValueInvalidError struct {
	Issue Issue
	value any
}

// NewValueInvalidError builds a ValueInvalidError carrying value.
func NewValueInvalidError(issue Issue, value any) *ValueInvalidError {
	return &ValueInvalidError{Issue: issue, value: value}
}

func (e *ValueInvalidError) Error() string { return e.Issue.describe("invalid value") }

// PotentiallyHarmfulValue returns the value that failed validation. Do not
// log it without deciding that is acceptable.
func (e *ValueInvalidError) PotentiallyHarmfulValue() any { return e.value }

// AsIssue extracts the Issue from a SchemaInvalidError or ValueInvalidError
// using errors.As internally.
func AsIssue(err error) (Issue, bool) {
	if err == nil {
		return Issue{}, false
	}
	var ve *ValueInvalidError
	if errors.As(err, &ve) {
		return ve.Issue, true
	}
	var se *SchemaInvalidError
	if errors.As(err, &se) {
		return se.Issue, true
	}
	return Issue{}, false
}

// ErrorFactory builds the error raised for a failing value. It receives the
// path to the failing node, the issue code and the localized reason.
type ErrorFactory func(fieldKeys []string, code, reason string) error

// Option configures Validate and Extract.
type Option func(*options)

type options struct {
	errorFactory ErrorFactory
}

// WithErrorFactory replaces the default *ValueInvalidError with errors built
// by f.
func WithErrorFactory(f ErrorFactory) Option {
	return func(o *options) { o.errorFactory = f }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
