package dsl

import goshape "github.com/reoring/goshape"

// NumberBuilder configures a number leaf. Bounds are inclusive.
type NumberBuilder struct{ f goshape.Field }

func newNumber(label string) NumberBuilder {
	return NumberBuilder{f: goshape.Field{Label: label, Kind: goshape.KindNumber}}
}

// Number accepts any finite number.
func Number() NumberBuilder { return newNumber("Number") }

// NumberInRange accepts finite numbers between lo and hi.
func NumberInRange(lo, hi float64) NumberBuilder {
	return newNumber("NumberInRange").Min(lo).Max(hi)
}

// Integer accepts whole numbers only.
func Integer() NumberBuilder { return newNumber("Integer").NoDecimals() }

// IntegerInRange accepts whole numbers between lo and hi.
func IntegerInRange(lo, hi float64) NumberBuilder {
	return newNumber("IntegerInRange").NoDecimals().Min(lo).Max(hi)
}

// Optional also accepts nil and goshape.Undefined.
func (b NumberBuilder) Optional() NumberBuilder { b.f.Optional = true; return b }

// NoDecimals rejects numbers with a fractional part.
func (b NumberBuilder) NoDecimals() NumberBuilder { b.f.NoDecimals = true; return b }

// Min sets the lower bound.
func (b NumberBuilder) Min(v float64) NumberBuilder { b.f.Min = &v; return b }

// Max sets the upper bound.
func (b NumberBuilder) Max(v float64) NumberBuilder { b.f.Max = &v; return b }

// Label overrides the label compared by goshape.IsSameSchemaBase.
func (b NumberBuilder) Label(label string) NumberBuilder { b.f.Label = label; return b }

// Build returns the leaf descriptor.
func (b NumberBuilder) Build() goshape.Field { return b.f }
