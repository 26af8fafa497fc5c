package goshape

import (
	"slices"

	"github.com/reoring/goshape/internal/typecheck"
)

// NodeClass is the structural classification of a frozen schema node.
type NodeClass int

const (
	ClassAnyLeaf  NodeClass = iota // A leaf of kind "any".
	ClassOptional                  // An optional-object wrapper.
	ClassArray                     // A single-item array node.
	ClassObject                    // A non-empty object node.
	ClassLeaf                      // Any other leaf.
)

func (c NodeClass) String() string {
	switch c {
	case ClassAnyLeaf:
		return "any-leaf"
	case ClassOptional:
		return "optional"
	case ClassArray:
		return "array"
	case ClassObject:
		return "object"
	case ClassLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is a read-only view of a validated schema. Implementations are
// *ObjectNode, *ArrayNode, *OptionalNode and *LeafNode.
type Node interface {
	Class() NodeClass
	frozen()
}

// ObjectNode maps field names to child nodes.
type ObjectNode struct {
	keys   []string
	fields map[string]Node
}

func (*ObjectNode) Class() NodeClass { return ClassObject }
func (*ObjectNode) frozen()          {}

// Keys returns the field names in sorted order.
func (n *ObjectNode) Keys() []string { return slices.Clone(n.keys) }

// Get returns the child node for key.
func (n *ObjectNode) Get(key string) (Node, bool) {
	c, ok := n.fields[key]
	return c, ok
}

func (n *ObjectNode) Len() int { return len(n.keys) }

// ArrayNode describes a homogeneous sequence.
type ArrayNode struct {
	item Node
}

func (*ArrayNode) Class() NodeClass { return ClassArray }
func (*ArrayNode) frozen()          {}

// Item returns the schema every element must satisfy.
func (n *ArrayNode) Item() Node { return n.item }

// OptionalNode makes an object or array subtree acceptable when absent.
type OptionalNode struct {
	next  Node
	label string
}

func (*OptionalNode) Class() NodeClass { return ClassOptional }
func (*OptionalNode) frozen()          {}

// Next returns the wrapped *ObjectNode or *ArrayNode.
func (n *OptionalNode) Next() Node { return n.next }

func (n *OptionalNode) Label() string { return n.label }

// LeafNode is a terminal node.
type LeafNode struct {
	field Field
}

func (n *LeafNode) Class() NodeClass {
	if n.field.Kind == KindAny {
		return ClassAnyLeaf
	}
	return ClassLeaf
}
func (*LeafNode) frozen() {}

// Field returns a copy of the leaf descriptor.
func (n *LeafNode) Field() Field { return n.field.clone() }

func (n *LeafNode) Kind() Kind { return n.field.Kind }

// Validated is an immutable handle over a schema that passed ValidateSchema.
// It is safe for concurrent use.
type Validated struct {
	root Node
}

// NewSchema validates decl and freezes a private copy of it. Later changes
// to decl do not affect the returned schema.
func NewSchema(decl any) (*Validated, error) {
	root, err := compile(decl)
	if err != nil {
		return nil, err
	}
	return &Validated{root: root}, nil
}

// MustSchema is like NewSchema but panics on error. Intended for package
// level schema declarations.
func MustSchema(decl any) *Validated {
	s, err := NewSchema(decl)
	if err != nil {
		panic(err)
	}
	return s
}

// Schema returns the frozen root node.
func (s *Validated) Schema() Node { return s.root }

// Section derives a schema over the subtree chosen by sel. The subtree is
// shared with s, not copied. A nil result, including a typed nil node,
// yields ErrNilSection.
func (s *Validated) Section(sel func(Node) Node) (*Validated, error) {
	n := sel(s.root)
	if typecheck.IsNil(n) {
		return nil, ErrNilSection
	}
	return &Validated{root: n}, nil
}

// At derives a schema by following object keys from the root. Optional
// wrappers met along the way, including at the target, are unwrapped.
func (s *Validated) At(path ...string) (*Validated, error) {
	return s.Section(func(n Node) Node {
		for _, key := range path {
			n = unwrapOptional(n)
			obj, ok := n.(*ObjectNode)
			if !ok {
				return nil
			}
			if n, ok = obj.Get(key); !ok {
				return nil
			}
		}
		return unwrapOptional(n)
	})
}

func unwrapOptional(n Node) Node {
	if o, ok := n.(*OptionalNode); ok {
		return o.next
	}
	return n
}

// Validate reports whether value conforms to s. See Validate.
func (s *Validated) Validate(value any, opts ...Option) error {
	return Validate(s, value, opts...)
}

// Extract whitelists value through s. See Extract.
func (s *Validated) Extract(value any, opts ...Option) (map[string]any, error) {
	return Extract(s, value, opts...)
}
