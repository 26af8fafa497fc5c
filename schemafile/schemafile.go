// Package schemafile loads goshape schema declarations from YAML or JSON
// documents.
//
// A document maps onto the declaration form as follows:
//
//	name: string                  # shorthand for {$type: string}
//	age: {$type: number, noDecimals: true, min: 0}
//	tags: [string]                # array of one item declaration
//	address:                      # object node
//	  city: {$type: string, nonEmpty: true, maxLength: 100}
//	note:
//	  $type: optional-object
//	  next: {text: string}
//
// A mapping holding a $type key is always a leaf, so an object node cannot
// declare a property named "$type". The class-instance and function kinds
// have no document form and are rejected.
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/mitchellh/mapstructure"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/source"
)

// TypeKey marks a mapping as a leaf.
const TypeKey = "$type"

// ErrUnsupportedKind is returned for kinds that cannot be declared in a
// document.
var ErrUnsupportedKind = errors.New("kind cannot be declared in a schema document")

// Error locates a load failure inside the document.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "schemafile: " + e.Err.Error()
	}
	return fmt.Sprintf("schemafile: at %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// leafDoc is the option set of a leaf mapping.
type leafDoc struct {
	Type          string   `mapstructure:"$type"`
	Label         string   `mapstructure:"label"`
	Optional      bool     `mapstructure:"optional"`
	NonEmpty      bool     `mapstructure:"nonEmpty"`
	MaxLength     *int     `mapstructure:"maxLength"`
	Pattern       string   `mapstructure:"pattern"`
	IntegerString bool     `mapstructure:"integerString"`
	NoDecimals    bool     `mapstructure:"noDecimals"`
	Min           *float64 `mapstructure:"min"`
	Max           *float64 `mapstructure:"max"`
	Enum          []string `mapstructure:"enum"`
	EnumName      string   `mapstructure:"enumName"`
	Next          any      `mapstructure:"next"`
}

// Load reads a YAML document (JSON is accepted as a subset) and returns its
// declaration. The declaration is not shape-checked; pass it to
// goshape.NewSchema or use Compile.
func Load(data []byte, opts ...source.Option) (any, error) {
	doc, err := source.YAML(data, opts...)
	if err != nil {
		return nil, err
	}
	return convert(doc)
}

// LoadFile reads the document at path, picking YAML or JSON by extension.
func LoadFile(path string, opts ...source.Option) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := source.Decode(path, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return convert(doc)
}

// Compile loads data and freezes the resulting declaration.
func Compile(data []byte, opts ...source.Option) (*goshape.Validated, error) {
	decl, err := Load(data, opts...)
	if err != nil {
		return nil, err
	}
	return goshape.NewSchema(decl)
}

// CompileFile is Compile for a file.
func CompileFile(path string, opts ...source.Option) (*goshape.Validated, error) {
	decl, err := LoadFile(path, opts...)
	if err != nil {
		return nil, err
	}
	return goshape.NewSchema(decl)
}

func convert(doc any) (any, error) {
	return (&loader{}).node(doc, nil)
}

type loader struct{}

func (l *loader) fail(path []string, err error) error {
	return &Error{Path: goshape.Issue{FieldKeys: path}.Path(), Err: err}
}

func (l *loader) node(v any, path []string) (any, error) {
	switch t := v.(type) {
	case string:
		return goshape.Field{Kind: goshape.Kind(t)}, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			n, err := l.node(item, append(path, fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		if _, ok := t[TypeKey]; ok {
			return l.leaf(t, path)
		}
		out := make(goshape.Object, len(t))
		for k, item := range t {
			n, err := l.node(item, append(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		// Scalars are left for the shape validator to report.
		return v, nil
	}
}

func (l *loader) leaf(m map[string]any, path []string) (any, error) {
	var doc leafDoc
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, l.fail(path, err)
	}

	kind := goshape.Kind(doc.Type)
	switch kind {
	case goshape.KindClassInstance, goshape.KindFunction:
		return nil, l.fail(path, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind))
	}

	f := goshape.Field{
		Label:          doc.Label,
		Kind:           kind,
		Optional:       doc.Optional,
		DisallowEmpty:  doc.NonEmpty,
		ContentInteger: doc.IntegerString,
		MaxLength:      doc.MaxLength,
		NoDecimals:     doc.NoDecimals,
		Min:            doc.Min,
		Max:            doc.Max,
		EnumName:       doc.EnumName,
		EnumValues:     doc.Enum,
	}
	if doc.Pattern != "" {
		re, err := regexp.Compile(doc.Pattern)
		if err != nil {
			return nil, l.fail(path, fmt.Errorf("pattern: %w", err))
		}
		f.Pattern = re
	}
	if doc.Next != nil {
		if kind != goshape.KindOptionalObject {
			return nil, l.fail(path, fmt.Errorf("next is only valid for %s", goshape.KindOptionalObject))
		}
		next, err := l.node(doc.Next, path)
		if err != nil {
			return nil, err
		}
		f.Next = next
	}
	return f, nil
}
