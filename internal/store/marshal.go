package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/trs/internal/ir"
)

// marshalStrings converts a string list to canonical JSON TEXT for
// storage. A nil list is stored as [].
func marshalStrings(ss []string) (string, error) {
	data, err := ir.MarshalCanonical(ir.Strings(ss))
	if err != nil {
		return "", fmt.Errorf("marshal strings: %w", err)
	}
	return string(data), nil
}

// unmarshalStrings parses a JSON array of strings. Empty input decodes to
// an empty list.
func unmarshalStrings(data string) ([]string, error) {
	out := []string{}
	if data == "" || data == "[]" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal strings: %w", err)
	}
	return out, nil
}
