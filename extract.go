package goshape

import (
	"github.com/reoring/goshape/internal/typecheck"
)

// Extract builds a copy of value holding only what s describes. Unlike
// Validate it tolerates extra keys and drops them. Shape mismatches (an
// object or array node meeting something else) still fail.
//
// Leaves other than "any" copy a value only when it is a string, boolean,
// number or valid date; nil is kept as nil and everything else is dropped,
// whatever kind the leaf declares. "any" leaves copy the raw value,
// including nested structures. Objects come back as map[string]any and
// arrays as []any; the input is never modified.
//
// The root of s must be an object node or an empty-object leaf, otherwise
// ErrExtractRoot is returned.
func Extract(s *Validated, value any, opts ...Option) (map[string]any, error) {
	switch root := s.root.(type) {
	case *LeafNode:
		if root.field.Kind == KindEmptyObject {
			return map[string]any{}, nil
		}
		return nil, ErrExtractRoot
	case *ObjectNode:
		w := walker{schema: s.root, value: value, opts: newOptions(opts)}
		return w.extractObject(root, value, nil)
	default:
		return nil, ErrExtractRoot
	}
}

// ExtractSchemaAndValue validates decl and then extracts value through it.
func ExtractSchemaAndValue(decl any, value any, opts ...Option) (map[string]any, error) {
	s, err := NewSchema(decl)
	if err != nil {
		return nil, err
	}
	return s.Extract(value, opts...)
}

// extract returns Undefined for values that must be left out.
func (w *walker) extract(n Node, v any, path []string) (any, error) {
	switch n := n.(type) {
	case *OptionalNode:
		if v == Undefined {
			return Undefined, nil
		}
		if typecheck.IsNil(v) {
			return nil, nil
		}
		return w.extract(n.next, v, path)
	case *ArrayNode:
		return w.extractArray(n, v, path)
	case *ObjectNode:
		return w.extractObject(n, v, path)
	case *LeafNode:
		if n.field.Kind == KindAny {
			return v, nil
		}
		return extractTerminal(v), nil
	default:
		panic("goshape: unknown node type")
	}
}

func (w *walker) extractObject(n *ObjectNode, v any, path []string) (map[string]any, error) {
	if !typecheck.IsObject(v) {
		return nil, w.failKey(path, CodeExpectedObject, "expected_object")
	}
	out := make(map[string]any, len(n.keys))
	for _, k := range n.keys {
		got, err := w.extract(n.fields[k], lookup(v, k), append(path, k))
		if err != nil {
			return nil, err
		}
		if got != Undefined {
			out[k] = got
		}
	}
	return out, nil
}

func (w *walker) extractArray(n *ArrayNode, v any, path []string) ([]any, error) {
	if !typecheck.IsArray(v) {
		return nil, w.failKey(path, CodeExpectedArray, "expected_array")
	}
	size := typecheck.ArrayLen(v)
	out := make([]any, 0, size)
	for i := 0; i < size; i++ {
		got, err := w.extract(n.item, typecheck.ArrayIndex(v, i), append(path, pathKey(i)))
		if err != nil {
			return nil, err
		}
		if got != Undefined {
			out = append(out, got)
		}
	}
	return out, nil
}

func extractTerminal(v any) any {
	switch {
	case typecheck.IsString(v), typecheck.IsBoolean(v), typecheck.IsNumber(v), typecheck.IsValidDate(v):
		return v
	case typecheck.IsNil(v):
		return nil
	default:
		return Undefined
	}
}
