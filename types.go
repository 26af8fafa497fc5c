package goshape

import (
	"reflect"
	"regexp"
	"slices"
)

// Kind tags a leaf descriptor. The set of kinds is closed; see Kinds.
type Kind string

const (
	KindAny            Kind = "any"
	KindNull           Kind = "null"
	KindEmptyObject    Kind = "empty-object"
	KindOptionalObject Kind = "optional-object"
	KindString         Kind = "string"
	KindNumber         Kind = "number"
	KindDate           Kind = "date"
	KindBoolean        Kind = "boolean"
	KindClassInstance  Kind = "class-instance"
	KindEnum           Kind = "enum"
	KindFunction       Kind = "function"
)

// Known reports whether k is one of the recognized kinds.
func (k Kind) Known() bool {
	_, ok := _predicates[k]
	return ok
}

// Kinds returns every recognized kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(_predicates))
	for k := range _predicates {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Field is a leaf descriptor. Only a Field (or *Field) is ever treated as a
// leaf; every other declaration value is an object node, an array node or an
// error.
//
// The zero value of each option is its documented default: empty strings are
// allowed, decimals are allowed, bounds are absent.
type Field struct {
	Label string
	Kind  Kind

	// Optional accepts nil and Undefined. Not honored by class-instance.
	Optional bool

	// string
	DisallowEmpty  bool
	ContentInteger bool
	MaxLength      *int
	Pattern        *regexp.Regexp

	// number
	NoDecimals bool
	Min        *float64
	Max        *float64

	// enum
	EnumName   string
	EnumValues []string

	// class-instance
	ClassType reflect.Type

	// optional-object: an object node or an array node.
	Next any
}

// clone returns a copy of f that shares no mutable memory with it. Next is
// dropped: optional targets live in the node tree, not in the leaf.
func (f Field) clone() Field {
	c := f
	c.Next = nil
	if f.MaxLength != nil {
		n := *f.MaxLength
		c.MaxLength = &n
	}
	if f.Min != nil {
		n := *f.Min
		c.Min = &n
	}
	if f.Max != nil {
		n := *f.Max
		c.Max = &n
	}
	c.EnumValues = slices.Clone(f.EnumValues)
	return c
}

// Object is a convenience type for object node declarations.
type Object map[string]any

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the value of an absent key. Lookups of keys missing from an
// object yield Undefined, which is distinct from nil.
var Undefined any = undefined{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool { return v == Undefined }

// Result is the outcome of a leaf check. Reason is empty when Valid.
type Result struct {
	Valid  bool
	Code   string
	Reason string
}
