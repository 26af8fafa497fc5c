package dsl

import (
	"reflect"

	goshape "github.com/reoring/goshape"
)

// OptionalBuilder configures leaves whose only option is Optional: boolean,
// date, function and enum.
type OptionalBuilder struct{ f goshape.Field }

// Boolean accepts true and false.
func Boolean() OptionalBuilder {
	return OptionalBuilder{f: goshape.Field{Label: "Boolean", Kind: goshape.KindBoolean}}
}

// Date accepts a non-zero time.Time or *time.Time.
func Date() OptionalBuilder {
	return OptionalBuilder{f: goshape.Field{Label: "Date", Kind: goshape.KindDate}}
}

// Function accepts non-nil func values.
func Function() OptionalBuilder {
	return OptionalBuilder{f: goshape.Field{Label: "Function", Kind: goshape.KindFunction}}
}

// Enum accepts strings equal to one of values.
func Enum[T ~string](values ...T) OptionalBuilder {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return OptionalBuilder{f: goshape.Field{
		Label:      "Enum",
		Kind:       goshape.KindEnum,
		EnumName:   reflect.TypeFor[T]().Name(),
		EnumValues: names,
	}}
}

// Optional also accepts nil and goshape.Undefined.
func (b OptionalBuilder) Optional() OptionalBuilder { b.f.Optional = true; return b }

// Label overrides the label compared by goshape.IsSameSchemaBase.
func (b OptionalBuilder) Label(label string) OptionalBuilder { b.f.Label = label; return b }

// Build returns the leaf descriptor.
func (b OptionalBuilder) Build() goshape.Field { return b.f }

// FixedBuilder is for leaves without options.
type FixedBuilder struct{ f goshape.Field }

// Any accepts every value. Extraction copies it unchanged.
func Any() FixedBuilder { return FixedBuilder{f: goshape.Field{Label: "Any", Kind: goshape.KindAny}} }

// Null accepts only nil and goshape.Undefined.
func Null() FixedBuilder { return FixedBuilder{f: goshape.Field{Label: "Null", Kind: goshape.KindNull}} }

// EmptyObject accepts a map without keys.
func EmptyObject() FixedBuilder {
	return FixedBuilder{f: goshape.Field{Label: "EmptyObject", Kind: goshape.KindEmptyObject}}
}

// Class accepts values of type T, types embedding T, and, when T is an
// interface, types implementing it. A class leaf is never optional.
func Class[T any]() FixedBuilder {
	return FixedBuilder{f: goshape.Field{
		Label:     "Class",
		Kind:      goshape.KindClassInstance,
		ClassType: reflect.TypeFor[T](),
	}}
}

// Optional makes an object or array declaration acceptable when nil or
// absent.
func Optional(next any) FixedBuilder {
	return FixedBuilder{f: goshape.Field{Label: "Optional", Kind: goshape.KindOptionalObject, Next: next}}
}

// Label overrides the label compared by goshape.IsSameSchemaBase.
func (b FixedBuilder) Label(label string) FixedBuilder { b.f.Label = label; return b }

// Build returns the leaf descriptor.
func (b FixedBuilder) Build() goshape.Field { return b.f }

// Array declares a sequence whose every element matches item.
func Array(item any) []any { return []any{item} }
