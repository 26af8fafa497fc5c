package dsl

import (
	"regexp"

	goshape "github.com/reoring/goshape"
)

var _uuidRegex = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// StringBuilder configures a string leaf.
type StringBuilder struct{ f goshape.Field }

func newString(label string) StringBuilder {
	return StringBuilder{f: goshape.Field{Label: label, Kind: goshape.KindString}}
}

// String accepts any string, including "".
func String() StringBuilder { return newString("String") }

// StringShort accepts strings of at most 100 runes.
func StringShort() StringBuilder { return newString("StringShort").MaxLength(100) }

// StringMedium accepts strings of at most 1000 runes.
func StringMedium() StringBuilder { return newString("StringMedium").MaxLength(1000) }

// StringLong accepts strings of at most 10000 runes.
func StringLong() StringBuilder { return newString("StringLong").MaxLength(10000) }

// StringInteger accepts strings such as "42" or "-7".
func StringInteger() StringBuilder { return newString("StringInteger").IntegerString() }

// StringUUID accepts RFC 4122 UUIDs of versions 1 to 5, in any letter case.
func StringUUID() StringBuilder { return newString("StringUuid").Matches(_uuidRegex) }

// Optional also accepts nil and goshape.Undefined.
func (b StringBuilder) Optional() StringBuilder { b.f.Optional = true; return b }

// NonEmpty rejects "".
func (b StringBuilder) NonEmpty() StringBuilder { b.f.DisallowEmpty = true; return b }

// MaxLength limits the length in runes.
func (b StringBuilder) MaxLength(n int) StringBuilder { b.f.MaxLength = &n; return b }

// Matches requires the string to match re.
func (b StringBuilder) Matches(re *regexp.Regexp) StringBuilder { b.f.Pattern = re; return b }

// IntegerString requires an optional minus sign followed by digits.
func (b StringBuilder) IntegerString() StringBuilder { b.f.ContentInteger = true; return b }

// Label overrides the label compared by goshape.IsSameSchemaBase.
func (b StringBuilder) Label(label string) StringBuilder { b.f.Label = label; return b }

// Build returns the leaf descriptor.
func (b StringBuilder) Build() goshape.Field { return b.f }
