// Package source decodes JSON and YAML documents into the generic value
// model goshape validates: map[string]any, []any, strings, booleans,
// numbers, time.Time and nil.
//
// Both decoders reject duplicate mapping keys by default. A Go map keeps
// only the last occurrence, which would let a duplicated key slip a value
// past validation unseen.
package source

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultMaxDepth bounds container nesting.
const DefaultMaxDepth = 256

// DefaultMaxNodes bounds the number of values a YAML document may expand
// to, aliases counted once per use.
const DefaultMaxNodes = 1_000_000

// Option configures decoding.
type Option func(*config)

type config struct {
	allowDuplicates bool
	maxDepth        int
	maxNodes        int
}

func newConfig(opts []Option) config {
	c := config{maxDepth: DefaultMaxDepth, maxNodes: DefaultMaxNodes}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// AllowDuplicateKeys keeps the last occurrence of a repeated key instead of
// failing.
func AllowDuplicateKeys() Option {
	return func(c *config) { c.allowDuplicates = true }
}

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithMaxNodes overrides DefaultMaxNodes. Values below 1 are ignored.
func WithMaxNodes(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxNodes = n
		}
	}
}

// DuplicateKeyError reports a key that appears twice in the same mapping.
// Line and Col are set for YAML input only.
type DuplicateKeyError struct {
	Path string
	Key  string
	Line int
	Col  int
}

func (e *DuplicateKeyError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("source: duplicate key %q at %s (line %d, column %d)", e.Key, e.Path, e.Line, e.Col)
	}
	return fmt.Sprintf("source: duplicate key %q at %s", e.Key, e.Path)
}

// DepthError reports input nested deeper than the configured maximum.
type DepthError struct {
	Path string
	Max  int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("source: nesting deeper than %d at %q", e.Max, e.Path)
}

// NodeLimitError reports a document that expands to more values than the
// configured maximum, typically through nested aliases.
type NodeLimitError struct {
	Path string
	Max  int
}

func (e *NodeLimitError) Error() string {
	return fmt.Sprintf("source: document expands to more than %d values at %q", e.Max, e.Path)
}

// IsYAMLName reports whether name has a .yaml or .yml extension.
func IsYAMLName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Decode picks YAML or JSON from the extension of name. Anything that is
// not .yaml or .yml is read as JSON.
func Decode(name string, data []byte, opts ...Option) (any, error) {
	if IsYAMLName(name) {
		return YAML(data, opts...)
	}
	return JSON(data, opts...)
}
