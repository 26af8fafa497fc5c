package goshape

import (
	"strconv"

	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/internal/typecheck"
)

// ParseValue converts an integer string (for example a path or query
// parameter) into an int64 when f is a number field without decimals.
// Every other input is returned unchanged, including integer strings that
// do not fit in an int64.
//
// A field without a kind is not a usable descriptor and yields a
// *SchemaInvalidError.
func ParseValue(f Field, v any) (any, error) {
	if f.Kind == "" {
		return nil, &SchemaInvalidError{Issue: Issue{
			Schema:    f,
			FieldKeys: []string{},
			Code:      CodeSchemaNotField,
			Reason:    i18n.T(CodeSchemaNotField, nil),
		}}
	}
	if f.Kind != KindNumber || !f.NoDecimals || !typecheck.IsIntegerString(v) {
		return v, nil
	}
	s, _ := typecheck.StringOf(v)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return v, nil
	}
	return n, nil
}
