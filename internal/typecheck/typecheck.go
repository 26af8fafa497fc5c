// Package typecheck classifies arbitrary Go values into the small set of
// runtime shapes the schema engine reasons about (string, number, boolean,
// date, plain object, array, function, class instance, unset).
//
// Every predicate accepts any value and never panics. Objects and arrays are
// disjoint: nothing that satisfies IsArray satisfies IsObject.
package typecheck

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"time"
)

var (
	_timeType       = reflect.TypeOf(time.Time{})
	_jsonNumberType = reflect.TypeOf(json.Number(""))
	_integerRegex   = regexp.MustCompile(`^-?[0-9]+$`)
)

// IsNil reports whether v is nil or a nil pointer, map, slice, func,
// channel or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsString reports whether v is a string or a named type whose underlying
// kind is string. json.Number is a number, not a string.
func IsString(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	return t.Kind() == reflect.String && t != _jsonNumberType
}

// StringOf returns the string content of v when IsString(v).
func StringOf(v any) (string, bool) {
	if !IsString(v) {
		return "", false
	}
	return reflect.ValueOf(v).String(), true
}

// IsBoolean reports whether v has an underlying bool kind.
func IsBoolean(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Bool
}

// IsNumber reports whether v is any integer or floating point kind, or a
// json.Number holding a parseable number. NaN and infinities are numbers.
func IsNumber(v any) bool {
	_, ok := Float(v)
	return ok
}

// Float converts a numeric value to float64.
func Float(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if n, ok := v.(json.Number); ok {
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// IsFiniteNumber reports whether v is a number that is neither NaN nor
// infinite.
func IsFiniteNumber(v any) bool {
	f, ok := Float(v)
	return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsInteger reports whether v is a finite number without a fractional part.
func IsInteger(v any) bool {
	f, ok := Float(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return math.Trunc(f) == f
}

// IsIntegerString reports whether v is a string made only of an optional
// leading minus sign and decimal digits.
func IsIntegerString(v any) bool {
	s, ok := StringOf(v)
	return ok && _integerRegex.MatchString(s)
}

// IsValidDate reports whether v is a non-zero time.Time or a non-nil pointer
// to one. The zero time plays the role of an invalid timestamp.
func IsValidDate(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return !t.IsZero()
	case *time.Time:
		return t != nil && !t.IsZero()
	}
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Struct && rv.Type().ConvertibleTo(_timeType) {
		return !rv.Convert(_timeType).Interface().(time.Time).IsZero()
	}
	return false
}

// IsObject reports whether v is a plain mapping: a non-nil map whose key kind
// is string.
func IsObject(v any) bool {
	if IsNil(v) {
		return false
	}
	t := reflect.TypeOf(v)
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// IsArray reports whether v is a slice or an array. A nil slice is treated as
// null, not as an array.
func IsArray(v any) bool {
	if IsNil(v) {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// IsFunction reports whether v is a non-nil func value.
func IsFunction(v any) bool {
	if IsNil(v) {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Func
}

// ObjectKeys returns the keys of a plain mapping. It returns nil when v is
// not an object.
func ObjectKeys(v any) []string {
	if !IsObject(v) {
		return nil
	}
	rv := reflect.ValueOf(v)
	keys := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	return keys
}

// ObjectGet looks up key in a plain mapping.
func ObjectGet(v any, key string) (any, bool) {
	if m, ok := v.(map[string]any); ok {
		val, found := m[key]
		return val, found
	}
	if !IsObject(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	kv := reflect.ValueOf(key).Convert(rv.Type().Key())
	mv := rv.MapIndex(kv)
	if !mv.IsValid() {
		return nil, false
	}
	return mv.Interface(), true
}

// ArrayLen returns the length of an array value, or -1.
func ArrayLen(v any) int {
	if !IsArray(v) {
		return -1
	}
	return reflect.ValueOf(v).Len()
}

// ArrayIndex returns the i-th element of an array value.
func ArrayIndex(v any, i int) any {
	if s, ok := v.([]any); ok {
		return s[i]
	}
	return reflect.ValueOf(v).Index(i).Interface()
}

// IsInstanceOf reports whether v is an instance of class. A value matches
// when its type (after dereferencing pointers) equals class, embeds class as
// an anonymous field at any depth, or implements class when class is an
// interface type.
func IsInstanceOf(v any, class reflect.Type) bool {
	if IsNil(v) || class == nil {
		return false
	}
	t := reflect.TypeOf(v)
	if class.Kind() == reflect.Interface {
		return t.Implements(class)
	}
	target := deref(class)
	return embeds(deref(t), target, 0)
}

// ClassName returns a display name for a class type.
func ClassName(class reflect.Type) string {
	if class == nil {
		return "<nil>"
	}
	t := deref(class)
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

const _maxEmbedDepth = 32

func embeds(t, target reflect.Type, depth int) bool {
	if t == target {
		return true
	}
	if depth > _maxEmbedDepth || t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		if embeds(deref(sf.Type), target, depth+1) {
			return true
		}
	}
	return false
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
