package goshape

import (
	"errors"
	"fmt"
	"slices"

	"github.com/reoring/goshape/internal/typecheck"
)

var (
	errFirstNotField  = errors.New("goshape: first argument is not a labelled schema field")
	errSecondNotField = errors.New("goshape: second argument is not a labelled schema field")
	errNotField       = errors.New("goshape: value is not a schema field")
)

// IsSameSchemaBase reports whether a and b were produced by the same leaf
// constructor, judged by Label. Both labels must be non-empty.
func IsSameSchemaBase(a, b Field) (bool, error) {
	if a.Label == "" {
		return false, errFirstNotField
	}
	if b.Label == "" {
		return false, errSecondNotField
	}
	return a.Label == b.Label, nil
}

// FieldKind returns the kind of a leaf declaration or *LeafNode.
func FieldKind(node any) (Kind, error) {
	var k Kind
	switch n := node.(type) {
	case *LeafNode:
		k = n.field.Kind
	case *OptionalNode:
		k = KindOptionalObject
	default:
		f, ok := asField(node)
		if !ok {
			return "", errNotField
		}
		k = f.Kind
	}
	if k == "" {
		return "", errNotField
	}
	return k, nil
}

// IsKind reports whether node is a leaf of kind k. It never fails.
func IsKind(node any, k Kind) bool {
	got, err := FieldKind(node)
	return err == nil && got == k
}

// IsFieldOptional reports whether f accepts nil and Undefined.
func IsFieldOptional(f Field) bool {
	return f.Optional && f.Kind != KindClassInstance
}

// PartialSchema returns the subset of an object declaration holding only
// keys. Keys absent from obj are ignored. The values are not copied.
func PartialSchema(obj any, keys ...string) Object {
	out := Object{}
	for _, k := range typecheck.ObjectKeys(obj) {
		if slices.Contains(keys, k) {
			out[k], _ = typecheck.ObjectGet(obj, k)
		}
	}
	return out
}

// StringMaxLength returns the configured max length of a string field.
func StringMaxLength(f Field) (int, bool) {
	if f.Kind != KindString || f.MaxLength == nil {
		return 0, false
	}
	return *f.MaxLength, true
}

// IsNumberInteger reports whether a number field disallows decimals.
func IsNumberInteger(f Field) (bool, error) {
	if f.Kind != KindNumber {
		return false, fmt.Errorf("goshape: field kind %q is not %q", f.Kind, KindNumber)
	}
	return f.NoDecimals, nil
}
