package goshape_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

func TestNewSchema_FreezesACopy(t *testing.T) {
	maxLen := 3
	leaf := goshape.Field{Label: "S", Kind: goshape.KindString, MaxLength: &maxLen, EnumValues: []string{"x"}}
	inner := goshape.Object{"s": leaf}
	decl := goshape.Object{"inner": inner, "list": []any{dsl.Number().Build()}}

	s, err := goshape.NewSchema(decl)
	require.NoError(t, err)

	// Mutate everything the caller still holds.
	maxLen = 1
	inner["s"] = dsl.Number().Build()
	inner["new"] = dsl.Any().Build()
	decl["list"].([]any)[0] = dsl.String().Build()
	delete(decl, "inner")

	assert.NoError(t, s.Validate(map[string]any{
		"inner": map[string]any{"s": "abc"},
		"list":  []any{1, 2},
	}))

	// The frozen leaf hands out copies only.
	inNode, ok := s.Schema().(*goshape.ObjectNode).Get("inner")
	require.True(t, ok)
	sNode, ok := inNode.(*goshape.ObjectNode).Get("s")
	require.True(t, ok)
	f := sNode.(*goshape.LeafNode).Field()
	*f.MaxLength = 0
	f.EnumValues[0] = "changed"
	g := sNode.(*goshape.LeafNode).Field()
	assert.Equal(t, 3, *g.MaxLength)
	assert.Equal(t, []string{"x"}, g.EnumValues)
}

func TestNodes(t *testing.T) {
	s := goshape.MustSchema(goshape.Object{
		"b":    dsl.Any().Build(),
		"a":    dsl.String().Build(),
		"list": dsl.Array(dsl.Boolean().Build()),
		"opt":  dsl.Optional(goshape.Object{"x": dsl.Null().Build()}).Label("Meta").Build(),
	})

	root, ok := s.Schema().(*goshape.ObjectNode)
	require.True(t, ok)
	assert.Equal(t, goshape.ClassObject, root.Class())
	assert.Equal(t, []string{"a", "b", "list", "opt"}, root.Keys())
	assert.Equal(t, 4, root.Len())

	keys := root.Keys()
	keys[0] = "zzz"
	assert.Equal(t, "a", root.Keys()[0])

	b, _ := root.Get("b")
	assert.Equal(t, goshape.ClassAnyLeaf, b.Class())
	a, _ := root.Get("a")
	assert.Equal(t, goshape.ClassLeaf, a.Class())
	assert.Equal(t, goshape.KindString, a.(*goshape.LeafNode).Kind())

	list, _ := root.Get("list")
	require.Equal(t, goshape.ClassArray, list.Class())
	assert.Equal(t, goshape.KindBoolean, list.(*goshape.ArrayNode).Item().(*goshape.LeafNode).Kind())

	opt, _ := root.Get("opt")
	require.Equal(t, goshape.ClassOptional, opt.Class())
	assert.Equal(t, "Meta", opt.(*goshape.OptionalNode).Label())
	assert.Equal(t, goshape.ClassObject, opt.(*goshape.OptionalNode).Next().Class())

	_, ok = root.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "optional", goshape.ClassOptional.String())
}

func TestSection_SharesSubtree(t *testing.T) {
	s := goshape.MustSchema(goshape.Object{
		"user": goshape.Object{
			"name": dsl.String().Matches(regexp.MustCompile(`^[A-Z]`)).Build(),
		},
		"other": dsl.Number().Build(),
	})

	sec, err := s.Section(func(n goshape.Node) goshape.Node {
		c, _ := n.(*goshape.ObjectNode).Get("user")
		return c
	})
	require.NoError(t, err)

	want, _ := s.Schema().(*goshape.ObjectNode).Get("user")
	assert.Same(t, want, sec.Schema())

	assert.NoError(t, sec.Validate(map[string]any{"name": "Ada"}))
	iss, _ := valueIssue(t, sec.Validate(map[string]any{"name": "ada"}))
	assert.Equal(t, "name", iss.Path())

	_, err = s.Section(func(goshape.Node) goshape.Node { return nil })
	assert.ErrorIs(t, err, goshape.ErrNilSection)

	leafRoot := goshape.MustSchema(dsl.String().Build())
	_, err = leafRoot.Section(func(n goshape.Node) goshape.Node {
		o, _ := n.(*goshape.ObjectNode)
		return o
	})
	assert.ErrorIs(t, err, goshape.ErrNilSection)
}

func TestAt(t *testing.T) {
	s := goshape.MustSchema(goshape.Object{
		"a": dsl.Optional(goshape.Object{
			"b": goshape.Object{"c": dsl.String().Build()},
			"l": dsl.Optional(dsl.Array(dsl.String().Build())).Build(),
		}).Build(),
	})

	b, err := s.At("a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, b.Schema().(*goshape.ObjectNode).Keys())

	a, err := s.At("a")
	require.NoError(t, err)
	assert.Equal(t, goshape.ClassObject, a.Schema().Class())

	l, err := s.At("a", "l")
	require.NoError(t, err)
	assert.Equal(t, goshape.ClassArray, l.Schema().Class())

	root, err := s.At()
	require.NoError(t, err)
	assert.Same(t, s.Schema(), root.Schema())

	_, err = s.At("a", "missing")
	assert.ErrorIs(t, err, goshape.ErrNilSection)
	_, err = s.At("a", "b", "c", "d")
	assert.ErrorIs(t, err, goshape.ErrNilSection)
}

func TestMustSchema_Panics(t *testing.T) {
	assert.Panics(t, func() { goshape.MustSchema(goshape.Object{}) })
}
