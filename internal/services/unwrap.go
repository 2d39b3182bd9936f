package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hongminglow/all-in-admin/internal/api"
	"github.com/hongminglow/all-in-admin/internal/models"
)

// ErrUnexpectedShape is returned when a list body does not match the
// resource's unwrap rule.
var ErrUnexpectedShape = fmt.Errorf("unexpected list shape: %w", api.ErrMalformedResponse)

// Unwrap extracts the records from a list response body.
type Unwrap func(body json.RawMessage) ([]models.Resource, error)

// BareArray is the rule for endpoints that answer with a JSON array.
func BareArray() Unwrap {
	return func(body json.RawMessage) ([]models.Resource, error) {
		return decodeArray(body)
	}
}

// Wrapped is the rule for endpoints that answer with {"<key>": [...]}.
func Wrapped(key string) Unwrap {
	return func(body json.RawMessage) ([]models.Resource, error) {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
			return nil, fmt.Errorf("%w: expected object with %q", ErrUnexpectedShape, key)
		}
		inner, ok := envelope[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrUnexpectedShape, key)
		}
		return decodeArray(inner)
	}
}

func decodeArray(body json.RawMessage) ([]models.Resource, error) {
	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) {
		return []models.Resource{}, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected array", ErrUnexpectedShape)
	}
	var items []models.Resource
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	if items == nil {
		items = []models.Resource{}
	}
	return items, nil
}
