package dsl_test

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

type color string

const (
	colorRed  color = "red"
	colorBlue color = "blue"
)

type shape interface{ Area() float64 }

type square struct{ side float64 }

func (s square) Area() float64 { return s.side * s.side }

func TestStringPresets(t *testing.T) {
	cases := []struct {
		name  string
		field goshape.Field
		label string
		max   int
	}{
		{"short", dsl.StringShort().Build(), "StringShort", 100},
		{"medium", dsl.StringMedium().Build(), "StringMedium", 1000},
		{"long", dsl.StringLong().Build(), "StringLong", 10000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.label, tc.field.Label)
			assert.Equal(t, goshape.KindString, tc.field.Kind)
			n, ok := goshape.StringMaxLength(tc.field)
			require.True(t, ok)
			assert.Equal(t, tc.max, n)
		})
	}

	s := dsl.String().Build()
	assert.False(t, s.DisallowEmpty)
	assert.False(t, s.Optional)
	assert.Nil(t, s.MaxLength)
	assert.True(t, dsl.StringInteger().Build().ContentInteger)
}

func TestBuildersAreValues(t *testing.T) {
	base := dsl.String()
	opt := base.Optional().NonEmpty().MaxLength(3)

	assert.False(t, base.Build().Optional)
	assert.Nil(t, base.Build().MaxLength)
	assert.True(t, opt.Build().Optional)
	assert.True(t, opt.Build().DisallowEmpty)

	// Each Build shares nothing the next chain step could change.
	a := dsl.Number().Min(1)
	f1 := a.Build()
	_ = a.Min(5)
	assert.Equal(t, 1.0, *f1.Min)
}

func TestStringUUID(t *testing.T) {
	s := goshape.MustSchema(goshape.Object{"id": dsl.StringUUID().Build()})

	assert.NoError(t, s.Validate(map[string]any{"id": "3F2504E0-4F89-11D3-9A0C-0305E82C3301"}))
	assert.NoError(t, s.Validate(map[string]any{"id": "123e4567-e89b-42d3-a456-426614174000"}))

	err := s.Validate(map[string]any{"id": "123e4567-e89b-62d3-a456-426614174000"})
	iss, ok := goshape.AsIssue(err)
	require.True(t, ok)
	assert.Equal(t, goshape.CodePattern, iss.Code)
}

func TestNumberPresets(t *testing.T) {
	n := dsl.IntegerInRange(-5, 5).Build()
	assert.Equal(t, "IntegerInRange", n.Label)
	assert.True(t, n.NoDecimals)
	assert.Equal(t, -5.0, *n.Min)
	assert.Equal(t, 5.0, *n.Max)

	isInt, err := goshape.IsNumberInteger(dsl.Integer().Build())
	require.NoError(t, err)
	assert.True(t, isInt)

	isInt, err = goshape.IsNumberInteger(dsl.NumberInRange(0, 1).Build())
	require.NoError(t, err)
	assert.False(t, isInt)
}

func TestEnum(t *testing.T) {
	f := dsl.Enum(colorRed, colorBlue).Optional().Build()
	assert.Equal(t, goshape.KindEnum, f.Kind)
	assert.Equal(t, "color", f.EnumName)
	assert.Equal(t, []string{"red", "blue"}, f.EnumValues)
	assert.True(t, f.Optional)

	assert.True(t, goshape.CheckLeaf(f, "blue").Valid)
	assert.True(t, goshape.CheckLeaf(f, colorRed).Valid)
	assert.False(t, goshape.CheckLeaf(f, "green").Valid)
}

func TestClass(t *testing.T) {
	f := dsl.Class[square]().Build()
	assert.Equal(t, goshape.KindClassInstance, f.Kind)
	assert.Equal(t, reflect.TypeFor[square](), f.ClassType)
	assert.True(t, goshape.CheckLeaf(f, square{side: 2}).Valid)

	iface := dsl.Class[shape]().Build()
	assert.True(t, goshape.CheckLeaf(iface, square{}).Valid)
	r := goshape.CheckLeaf(iface, 3)
	assert.False(t, r.Valid)
	assert.Equal(t, `Value is not of type "shape"`, r.Reason)
}

func TestFixedAndOptionalLeaves(t *testing.T) {
	assert.Equal(t, goshape.KindAny, dsl.Any().Build().Kind)
	assert.Equal(t, goshape.KindNull, dsl.Null().Build().Kind)
	assert.Equal(t, goshape.KindEmptyObject, dsl.EmptyObject().Build().Kind)
	assert.Equal(t, goshape.KindBoolean, dsl.Boolean().Build().Kind)
	assert.Equal(t, goshape.KindDate, dsl.Date().Build().Kind)
	assert.Equal(t, goshape.KindFunction, dsl.Function().Optional().Build().Kind)
	assert.Equal(t, "Flag", dsl.Boolean().Label("Flag").Build().Label)

	opt := dsl.Optional(goshape.Object{"a": dsl.String().Build()}).Build()
	assert.Equal(t, goshape.KindOptionalObject, opt.Kind)
	assert.NotNil(t, opt.Next)

	assert.Equal(t, []any{dsl.String().Build()}, dsl.Array(dsl.String().Build()))
}

func TestMatches(t *testing.T) {
	f := dsl.String().Matches(regexp.MustCompile(`^a+$`)).Build()
	assert.True(t, goshape.CheckLeaf(f, "aaa").Valid)
	assert.False(t, goshape.CheckLeaf(f, "ab").Valid)
}

func TestUnbuiltBuilderIsReported(t *testing.T) {
	_, err := goshape.NewSchema(goshape.Object{"name": dsl.String()})
	var se *goshape.SchemaInvalidError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, goshape.CodeSchemaNotBuilt, se.Issue.Code)
	assert.Equal(t, "name", se.Issue.Path())
	assert.Contains(t, se.Issue.Reason, "Build()")
}
