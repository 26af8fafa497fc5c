package goshape_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

func TestExtract_DropsUnknownKeys(t *testing.T) {
	s := goshape.MustSchema(goshape.Object{"foo": dsl.Number().Build()})

	out, err := s.Extract(map[string]any{"foo": 1, "bar": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foo": 1}, out)

	out, err = s.Extract(map[string]any{"foo": 1, "__proto__": map[string]any{"admin": true}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foo": 1}, out)
}

func TestExtract_OptionalNullVersusAbsent(t *testing.T) {
	s := goshape.MustSchema(goshape.Object{
		"lorem": dsl.Optional(goshape.Object{"foo": dsl.String().Build()}).Build(),
	})

	require.NoError(t, s.Validate(map[string]any{"lorem": nil}))
	out, err := s.Extract(map[string]any{"lorem": nil})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"lorem": nil}, out)
	assert.Contains(t, out, "lorem")

	require.NoError(t, s.Validate(map[string]any{}))
	out, err = s.Extract(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, out)
	assert.NotContains(t, out, "lorem")
}

func TestExtract_ArraysDropUndefinedElements(t *testing.T) {
	s := goshape.MustSchema(goshape.Object{
		"list": dsl.Array(dsl.String().Build()),
		"opt":  dsl.Array(dsl.Optional(goshape.Object{"a": dsl.Number().Build()}).Build()),
	})

	out, err := s.Extract(map[string]any{
		"list": []any{"a", map[string]any{"x": 1}, nil, []any{}, "b", goshape.Undefined},
		"opt":  []any{goshape.Undefined, nil, map[string]any{"a": 1, "b": 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", nil, "b"}, out["list"])
	assert.Equal(t, []any{nil, map[string]any{"a": 1}}, out["opt"])
}

func TestExtract_LeafCopiesTerminalShapesOnly(t *testing.T) {
	now := time.Now()
	s := goshape.MustSchema(goshape.Object{
		"s":  dsl.String().Build(),
		"b":  dsl.Boolean().Build(),
		"n":  dsl.Number().Build(),
		"d":  dsl.Date().Build(),
		"z":  dsl.String().Build(),
		"o":  dsl.String().Build(),
		"a":  dsl.String().Build(),
		"f":  dsl.Function().Build(),
		"fs": dsl.Function().Build(),
		"bd": dsl.Date().Build(),
	})

	out, err := s.Extract(map[string]any{
		"s":  "x",
		"b":  true,
		"n":  json.Number("1.5"),
		"d":  now,
		"z":  nil,
		"o":  map[string]any{"nested": 1},
		"a":  []any{1},
		"f":  func() {},
		"fs": "a string under a function leaf",
		"bd": time.Time{},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"s":  "x",
		"b":  true,
		"n":  json.Number("1.5"),
		"d":  now,
		"z":  nil,
		"fs": "a string under a function leaf",
	}, out)
}

// Extraction is not kind-aware: "any" copies nested structures verbatim while
// every other leaf drops them, even though a value under any leaf kind may be
// valid for that leaf.
func TestExtract_AnyVersusOtherLeafAsymmetry(t *testing.T) {
	nested := map[string]any{"deep": []any{1, 2}}
	s := goshape.MustSchema(goshape.Object{
		"any":   dsl.Any().Build(),
		"empty": dsl.EmptyObject().Build(),
		"null":  dsl.Null().Build(),
	})

	out, err := s.Extract(map[string]any{"any": nested, "empty": map[string]any{}, "null": nil})
	require.NoError(t, err)
	assert.Equal(t, nested, out["any"])
	assert.NotContains(t, out, "empty")
	assert.Contains(t, out, "null")

	// The value passed validation, yet the empty-object leaf dropped it.
	assert.NoError(t, s.Validate(map[string]any{"any": nested, "empty": map[string]any{}, "null": nil}))
}

func TestExtract_NaNPassesThrough(t *testing.T) {
	s := goshape.MustSchema(goshape.Object{"n": dsl.Number().Build()})
	out, err := s.Extract(map[string]any{"n": math.NaN()})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out["n"].(float64)))
}

func TestExtract_ShapeErrors(t *testing.T) {
	s := goshape.MustSchema(goshape.Object{
		"list": dsl.Array(goshape.Object{"a": dsl.String().Build()}),
	})

	_, err := s.Extract(map[string]any{"list": map[string]any{}})
	iss, _ := valueIssue(t, err)
	assert.Equal(t, goshape.CodeExpectedArray, iss.Code)
	assert.Equal(t, "list", iss.Path())

	_, err = s.Extract(map[string]any{"list": []any{"nope"}})
	iss, _ = valueIssue(t, err)
	assert.Equal(t, goshape.CodeExpectedObject, iss.Code)
	assert.Equal(t, "list[0]", iss.Path())

	_, err = s.Extract("not an object")
	iss, ve := valueIssue(t, err)
	assert.Equal(t, goshape.CodeExpectedObject, iss.Code)
	assert.Empty(t, iss.FieldKeys)
	assert.Equal(t, "not an object", ve.PotentiallyHarmfulValue())

	_, err = s.Extract(nil)
	assert.Error(t, err)
}

func TestExtract_Root(t *testing.T) {
	out, err := goshape.MustSchema(dsl.EmptyObject().Build()).Extract(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, out)

	_, err = goshape.MustSchema(dsl.String().Build()).Extract(map[string]any{})
	assert.ErrorIs(t, err, goshape.ErrExtractRoot)

	_, err = goshape.MustSchema(dsl.Array(dsl.String().Build())).Extract([]any{"a"})
	assert.ErrorIs(t, err, goshape.ErrExtractRoot)
}

func TestExtract_DoesNotMutateInput(t *testing.T) {
	s := userSchema()
	in := validUser()
	in["extra"] = "x"
	in["address"].(map[string]any)["extra"] = "y"

	out, err := s.Extract(in)
	require.NoError(t, err)
	assert.Equal(t, "x", in["extra"])
	assert.Equal(t, "y", in["address"].(map[string]any)["extra"])
	assert.NotContains(t, out["address"], "extra")
}

func TestExtract_Laws(t *testing.T) {
	s := userSchema()
	values := []map[string]any{
		validUser(),
		func() map[string]any { u := validUser(); u["address"] = nil; return u }(),
		func() map[string]any { u := validUser(); delete(u, "address"); u["admin"] = true; return u }(),
	}
	for _, v := range values {
		require.NoError(t, s.Validate(v))

		once, err := s.Extract(v)
		require.NoError(t, err)
		assert.NoError(t, s.Validate(once), "extracted value stays valid")

		twice, err := s.Extract(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "extraction is idempotent")

		augmented := map[string]any{"unexpected": 1}
		for k, val := range v {
			augmented[k] = val
		}
		iss, _ := valueIssue(t, s.Validate(augmented))
		assert.Equal(t, goshape.CodeUnknownKey, iss.Code)

		fromAugmented, err := s.Extract(augmented)
		require.NoError(t, err)
		assert.Equal(t, once, fromAugmented)
	}
}

func TestExtractSchemaAndValue(t *testing.T) {
	out, err := goshape.ExtractSchemaAndValue(goshape.Object{"a": dsl.String().Build()}, map[string]any{"a": "x", "b": "y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "x"}, out)

	_, err = goshape.ExtractSchemaAndValue(goshape.Object{"a": []any{}}, map[string]any{})
	var se *goshape.SchemaInvalidError
	assert.ErrorAs(t, err, &se)
}
