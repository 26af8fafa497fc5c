package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// YAML decodes the first document of a YAML stream into the value model.
// Mapping keys are always strings, !!timestamp scalars become time.Time and
// an empty document decodes to nil. Alias expansion counts against the
// node limit (see WithMaxNodes).
func YAML(data []byte, opts ...Option) (any, error) {
	return YAMLReader(bytes.NewReader(data), opts...)
}

// YAMLReader is YAML over an io.Reader.
func YAMLReader(r io.Reader, opts ...Option) (any, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	d := &yamlDecoder{cfg: newConfig(opts)}
	return d.node(&root, 0, "")
}

type yamlDecoder struct {
	cfg   config
	nodes int
}

func (d *yamlDecoder) node(n *yaml.Node, depth int, path string) (any, error) {
	if n.Kind != yaml.DocumentNode && n.Kind != yaml.AliasNode {
		d.nodes++
		if d.nodes > d.cfg.maxNodes {
			return nil, &NodeLimitError{Path: path, Max: d.cfg.maxNodes}
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.node(n.Content[0], depth, path)
	case yaml.AliasNode:
		return d.node(n.Alias, depth, path)
	case yaml.MappingNode:
		if depth >= d.cfg.maxDepth {
			return nil, &DepthError{Path: path, Max: d.cfg.maxDepth}
		}
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			key := k.Value
			child := joinKey(path, key)
			if _, dup := m[key]; dup && !d.cfg.allowDuplicates {
				return nil, &DuplicateKeyError{Path: child, Key: key, Line: k.Line, Col: k.Column}
			}
			val, err := d.node(v, depth+1, child)
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	case yaml.SequenceNode:
		if depth >= d.cfg.maxDepth {
			return nil, &DepthError{Path: path, Max: d.cfg.maxDepth}
		}
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := d.node(c, depth+1, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalar(n), nil
	default:
		return nil, fmt.Errorf("source: unsupported YAML node at %q", path)
	}
}

func scalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		// int64 avoids overflow surprises on 32-bit platforms.
		var i int64
		if err := n.Decode(&i); err == nil {
			return i
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return t
		}
	}
	return n.Value
}
