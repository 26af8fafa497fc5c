package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// ErrTrailingData is returned when input continues after the first JSON value.
var ErrTrailingData = errors.New("source: unexpected data after top-level value")

// JSON decodes a single JSON document into the value model: map[string]any
// for objects, []any for arrays, json.Number for numbers.
func JSON(data []byte, opts ...Option) (any, error) {
	return JSONReader(bytes.NewReader(data), opts...)
}

// JSONReader is JSON over an io.Reader.
func JSONReader(r io.Reader, opts ...Option) (any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	d := &jsonDecoder{dec: dec, cfg: newConfig(opts)}
	v, err := d.value(0, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

// EncodeJSON marshals an extracted value.
func EncodeJSON(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

type jsonDecoder struct {
	dec *gojson.Decoder
	cfg config
}

func (d *jsonDecoder) next() (any, error) {
	tok, err := d.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d *jsonDecoder) value(depth int, path string) (any, error) {
	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	return d.fromToken(tok, depth, path)
}

func (d *jsonDecoder) fromToken(tok any, depth int, path string) (any, error) {
	switch v := tok.(type) {
	case gojson.Delim:
		if depth >= d.cfg.maxDepth {
			return nil, &DepthError{Path: path, Max: d.cfg.maxDepth}
		}
		switch v {
		case '{':
			return d.object(depth+1, path)
		case '[':
			return d.array(depth+1, path)
		}
		return nil, fmt.Errorf("source: unexpected delimiter %q at %q", rune(v), path)
	case gojson.Number:
		return json.Number(v), nil
	case float64:
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case string, bool, nil:
		return v, nil
	default:
		return nil, fmt.Errorf("source: unexpected token %T at %q", tok, path)
	}
}

func (d *jsonDecoder) object(depth int, path string) (map[string]any, error) {
	out := map[string]any{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(gojson.Delim); ok && delim == '}' {
			return out, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("source: expected object key at %q", path)
		}
		child := joinKey(path, key)
		if _, dup := out[key]; dup && !d.cfg.allowDuplicates {
			return nil, &DuplicateKeyError{Path: child, Key: key}
		}
		v, err := d.value(depth, child)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
}

func (d *jsonDecoder) array(depth int, path string) ([]any, error) {
	out := []any{}
	for i := 0; ; i++ {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(gojson.Delim); ok && delim == ']' {
			return out, nil
		}
		v, err := d.fromToken(tok, depth, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
