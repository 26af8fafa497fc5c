package goshape

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/internal/typecheck"
)

type predicate func(f Field, v any) Result

// _predicates is the registry of kinds. optional-object is a known kind but
// is handled by the traversal, never by a leaf check.
var _predicates = map[Kind]predicate{
	KindAny:            checkAny,
	KindNull:           checkNull,
	KindEmptyObject:    checkEmptyObject,
	KindOptionalObject: nil,
	KindString:         checkString,
	KindNumber:         checkNumber,
	KindDate:           checkDate,
	KindBoolean:        checkBoolean,
	KindClassInstance:  checkClassInstance,
	KindEnum:           checkEnum,
	KindFunction:       checkFunction,
}

// CheckLeaf runs the check registered for f.Kind against v. It panics when
// f.Kind is unknown or is KindOptionalObject.
func CheckLeaf(f Field, v any) Result {
	p, ok := _predicates[f.Kind]
	if !ok || p == nil {
		panic(fmt.Sprintf("goshape: no leaf check for kind %q", f.Kind))
	}
	return p(f, v)
}

func pass() Result { return Result{Valid: true} }

func fail(code, key string, data map[string]string) Result {
	return Result{Code: code, Reason: i18n.T(key, data)}
}

func isUnset(v any) bool { return v == Undefined || typecheck.IsNil(v) }

// unsetResult applies the shared nil/Undefined rule. done is false when v is
// set and the kind-specific checks must run.
func unsetResult(optional bool, v any) (Result, bool) {
	if !isUnset(v) {
		return Result{}, false
	}
	if optional {
		return pass(), true
	}
	return fail(CodeRequired, "required", nil), true
}

func checkAny(Field, any) Result { return pass() }

func checkNull(_ Field, v any) Result {
	if isUnset(v) {
		return pass()
	}
	return fail(CodeNotNull, "not_null", nil)
}

func checkEmptyObject(_ Field, v any) Result {
	if typecheck.IsObject(v) && len(typecheck.ObjectKeys(v)) == 0 {
		return pass()
	}
	return fail(CodeNotEmptyObject, "not_empty_object", nil)
}

func checkString(f Field, v any) Result {
	if r, done := unsetResult(f.Optional, v); done {
		return r
	}
	s, ok := typecheck.StringOf(v)
	if !ok {
		return fail(CodeInvalidType, "not_string", nil)
	}
	if f.DisallowEmpty && s == "" {
		return fail(CodeEmpty, "empty", nil)
	}
	if f.MaxLength != nil && utf8.RuneCountInString(s) > *f.MaxLength {
		return fail(CodeTooLong, "too_long", map[string]string{"max": strconv.Itoa(*f.MaxLength)})
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return fail(CodePattern, "pattern", nil)
	}
	if f.ContentInteger && !typecheck.IsIntegerString(s) {
		return fail(CodeNotIntegerString, "not_integer_string", nil)
	}
	return pass()
}

func checkNumber(f Field, v any) Result {
	if r, done := unsetResult(f.Optional, v); done {
		return r
	}
	n, ok := typecheck.Float(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return fail(CodeInvalidType, "not_number", nil)
	}
	if f.NoDecimals && !typecheck.IsInteger(v) {
		return fail(CodeNotInteger, "not_integer", nil)
	}
	if (f.Min != nil && n < *f.Min) || (f.Max != nil && n > *f.Max) {
		return fail(CodeOutOfRange, "out_of_range", map[string]string{
			"min": formatBound(f.Min),
			"max": formatBound(f.Max),
		})
	}
	return pass()
}

func formatBound(b *float64) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatFloat(*b, 'g', -1, 64)
}

func checkDate(f Field, v any) Result {
	if r, done := unsetResult(f.Optional, v); done {
		return r
	}
	if !typecheck.IsValidDate(v) {
		return fail(CodeInvalidDate, "invalid_date", nil)
	}
	return pass()
}

func checkBoolean(f Field, v any) Result {
	if r, done := unsetResult(f.Optional, v); done {
		return r
	}
	if !typecheck.IsBoolean(v) {
		return fail(CodeInvalidType, "not_boolean", nil)
	}
	return pass()
}

// checkClassInstance never honors Optional.
func checkClassInstance(f Field, v any) Result {
	if r, done := unsetResult(false, v); done {
		return r
	}
	if !typecheck.IsInstanceOf(v, f.ClassType) {
		return fail(CodeInvalidClass, "invalid_class", map[string]string{"type": typecheck.ClassName(f.ClassType)})
	}
	return pass()
}

func checkEnum(f Field, v any) Result {
	if r, done := unsetResult(f.Optional, v); done {
		return r
	}
	s, ok := typecheck.StringOf(v)
	if !ok {
		return fail(CodeInvalidType, "not_string", nil)
	}
	if !slices.Contains(f.EnumValues, s) {
		return fail(CodeInvalidEnum, "invalid_enum", nil)
	}
	return pass()
}

func checkFunction(f Field, v any) Result {
	if r, done := unsetResult(f.Optional, v); done {
		return r
	}
	if !typecheck.IsFunction(v) {
		return fail(CodeInvalidType, "not_function", nil)
	}
	return pass()
}
