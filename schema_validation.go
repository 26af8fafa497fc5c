package goshape

import (
	"slices"
	"strconv"

	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/internal/typecheck"
)

// ValidateSchema checks that decl is a well-formed schema declaration and
// returns a *SchemaInvalidError locating the first malformed node.
//
// Declarations are built from:
//   - Field (or *Field) leaves;
//   - object nodes: non-empty maps with string keys, visited in key order;
//   - array nodes: slices or arrays holding exactly one item schema;
//   - optional wrappers: a Field of KindOptionalObject whose Next is an
//     object node or an array node.
func ValidateSchema(decl any) error {
	_, err := compile(decl)
	return err
}

// compile validates decl and builds the frozen node tree in the same pass.
func compile(decl any) (Node, error) {
	c := compiler{root: decl}
	return c.node(decl, nil)
}

type compiler struct {
	root any
}

func (c *compiler) fail(path []string, code string, data map[string]string) error {
	return &SchemaInvalidError{Issue: Issue{
		Schema:    c.root,
		FieldKeys: slices.Clone(path),
		Code:      code,
		Reason:    i18n.T(code, data),
	}}
}

func (c *compiler) node(decl any, path []string) (Node, error) {
	if f, ok := asField(decl); ok && f.Kind == KindOptionalObject {
		return c.optional(f, path)
	}
	switch {
	case isArrayDecl(decl):
		return c.array(decl, path)
	case isObjectDecl(decl):
		return c.object(decl, path)
	default:
		return c.leaf(decl, path)
	}
}

func (c *compiler) optional(f Field, path []string) (Node, error) {
	if !isArrayDecl(f.Next) && !isObjectDecl(f.Next) {
		return nil, c.fail(path, CodeSchemaOptionalTarget, nil)
	}
	next, err := c.node(f.Next, path)
	if err != nil {
		return nil, err
	}
	return &OptionalNode{next: next, label: f.Label}, nil
}

func (c *compiler) array(decl any, path []string) (Node, error) {
	if typecheck.ArrayLen(decl) != 1 {
		return nil, c.fail(path, CodeSchemaArrayLength, nil)
	}
	item, err := c.node(typecheck.ArrayIndex(decl, 0), append(path, "[0]"))
	if err != nil {
		return nil, err
	}
	return &ArrayNode{item: item}, nil
}

func (c *compiler) object(decl any, path []string) (Node, error) {
	keys := typecheck.ObjectKeys(decl)
	if len(keys) == 0 {
		return nil, c.fail(path, CodeSchemaEmptyObject, nil)
	}
	slices.Sort(keys)
	out := &ObjectNode{keys: keys, fields: make(map[string]Node, len(keys))}
	for _, k := range keys {
		child, _ := typecheck.ObjectGet(decl, k)
		n, err := c.node(child, append(path, k))
		if err != nil {
			return nil, err
		}
		out.fields[k] = n
	}
	return out, nil
}

func (c *compiler) leaf(decl any, path []string) (Node, error) {
	f, ok := asField(decl)
	if !ok {
		return nil, c.fail(path, CodeSchemaNotBuilt, nil)
	}
	if f.Kind == "" {
		return nil, c.fail(path, CodeSchemaNoType, nil)
	}
	if !f.Kind.Known() {
		return nil, c.fail(path, CodeSchemaUnknownType, map[string]string{"type": string(f.Kind)})
	}
	return &LeafNode{field: f.clone()}, nil
}

func asField(decl any) (Field, bool) {
	switch f := decl.(type) {
	case Field:
		return f, true
	case *Field:
		if f != nil {
			return *f, true
		}
	}
	return Field{}, false
}

func isArrayDecl(decl any) bool { return typecheck.IsArray(decl) }

func isObjectDecl(decl any) bool { return typecheck.IsObject(decl) }

func pathKey(i int) string { return "[" + strconv.Itoa(i) + "]" }
