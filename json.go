package goshape

import (
	"github.com/reoring/goshape/source"
)

// ValidateJSON decodes data (rejecting duplicate keys) and validates it
// against s. Decoding failures are returned as-is.
func ValidateJSON(s *Validated, data []byte, opts ...Option) error {
	v, err := source.JSON(data)
	if err != nil {
		return err
	}
	return s.Validate(v, opts...)
}

// ExtractJSON decodes data, whitelists it through s and re-encodes the
// result.
func ExtractJSON(s *Validated, data []byte, opts ...Option) ([]byte, error) {
	v, err := source.JSON(data)
	if err != nil {
		return nil, err
	}
	out, err := s.Extract(v, opts...)
	if err != nil {
		return nil, err
	}
	return source.EncodeJSON(out)
}
