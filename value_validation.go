package goshape

import (
	"slices"

	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/internal/typecheck"
)

// Validate reports whether value conforms to s. The first failing node
// aborts the walk; the returned error is a *ValueInvalidError unless
// WithErrorFactory says otherwise.
//
// Object nodes are closed: every declared key is checked (a missing key is
// checked as Undefined) and any key the schema does not declare fails with
// CodeUnknownKey.
func Validate(s *Validated, value any, opts ...Option) error {
	w := walker{schema: s.root, value: value, opts: newOptions(opts)}
	return w.validate(s.root, value, nil)
}

// ValidateSchemaAndValue validates decl and then value against it.
func ValidateSchemaAndValue(decl any, value any, opts ...Option) error {
	s, err := NewSchema(decl)
	if err != nil {
		return err
	}
	return s.Validate(value, opts...)
}

// walker carries what a raise point needs to build its error.
type walker struct {
	schema Node
	value  any
	opts   options
}

func (w *walker) fail(path []string, code, reason string) error {
	keys := slices.Clone(path)
	if keys == nil {
		keys = []string{}
	}
	if w.opts.errorFactory != nil {
		return w.opts.errorFactory(keys, code, reason)
	}
	return NewValueInvalidError(Issue{Schema: w.schema, FieldKeys: keys, Code: code, Reason: reason}, w.value)
}

func (w *walker) failKey(path []string, code, key string) error {
	return w.fail(path, code, i18n.T(key, nil))
}

func (w *walker) validate(n Node, v any, path []string) error {
	switch n := n.(type) {
	case *OptionalNode:
		if isUnset(v) {
			return nil
		}
		return w.validate(n.next, v, path)
	case *ArrayNode:
		return w.validateArray(n, v, path)
	case *ObjectNode:
		return w.validateObject(n, v, path)
	case *LeafNode:
		if n.field.Kind == KindAny {
			return nil
		}
		if r := CheckLeaf(n.field, v); !r.Valid {
			return w.fail(path, r.Code, r.Reason)
		}
		return nil
	default:
		panic("goshape: unknown node type")
	}
}

func (w *walker) validateArray(n *ArrayNode, v any, path []string) error {
	if !typecheck.IsArray(v) {
		return w.failKey(path, CodeExpectedArray, "expected_array")
	}
	for i, size := 0, typecheck.ArrayLen(v); i < size; i++ {
		if err := w.validate(n.item, typecheck.ArrayIndex(v, i), append(path, pathKey(i))); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) validateObject(n *ObjectNode, v any, path []string) error {
	if !typecheck.IsObject(v) {
		return w.failKey(path, CodeExpectedObject, "expected_object")
	}
	for _, k := range n.keys {
		if err := w.validate(n.fields[k], lookup(v, k), append(path, k)); err != nil {
			return err
		}
	}
	for _, k := range typecheck.ObjectKeys(v) {
		if _, declared := n.fields[k]; !declared {
			return w.failKey(path, CodeUnknownKey, "unknown_key")
		}
	}
	return nil
}

// lookup returns the value stored under key, or Undefined when absent.
func lookup(obj any, key string) any {
	v, ok := typecheck.ObjectGet(obj, key)
	if !ok {
		return Undefined
	}
	return v
}
