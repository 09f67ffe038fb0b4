// Package jsontree provides helpers for working with decoded JSON-like
// trees (map[string]any / []any / scalar values) shared by the spec and
// resolver packages.
package jsontree

import (
	"fmt"
	"strings"
)

// DeepCopy returns a structurally independent copy of a decoded JSON value.
// Scalars are returned as-is since they are immutable.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, val := range t {
			cp[k] = DeepCopy(val)
		}
		return cp
	case []any:
		cp := make([]any, len(t))
		for i, val := range t {
			cp[i] = DeepCopy(val)
		}
		return cp
	default:
		return v
	}
}

// RefTarget returns the $ref value of node if node is a reference node.
// Any object carrying a string $ref is treated as a pure reference; sibling
// keys are ignored per Swagger 2.0 reference semantics.
func RefTarget(node map[string]any) (string, bool) {
	ref, ok := node["$ref"].(string)
	return ref, ok
}

// UnescapeToken unescapes a JSON Pointer token per RFC 6901.
// Order matters: ~1 before ~0, otherwise "~01" would decode incorrectly.
func UnescapeToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// Normalize converts a YAML-decoded tree to the JSON tree shape. Mappings
// with non-string keys are stringified, so downstream traversal only ever
// sees map[string]any, []any, and scalars.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[stringifyKey(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}

func stringifyKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
