package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/apiverify/swagschema/specerrors"
)

// validTypeNames is the closed set of Draft-4 primitive type names.
var validTypeNames = map[string]bool{
	"string":  true,
	"number":  true,
	"integer": true,
	"boolean": true,
	"object":  true,
	"array":   true,
	"null":    true,
}

// validateValue applies every Draft-4 keyword in schema to data, appending
// one issue per violated constraint. Traversal order is deterministic:
// type, enum, then the type-specific keyword groups, with object keys in
// sorted order and array elements by index.
//
// The returned error is always a *specerrors.SchemaError; data violations
// are never errors.
func (v *Validator) validateValue(data any, schema map[string]any, path string, issues *[]Issue) error {
	if err := v.checkType(data, schema, path, issues); err != nil {
		return err
	}
	if err := v.checkEnum(data, schema, path, issues); err != nil {
		return err
	}
	if err := v.checkNumericBounds(data, schema, path, issues); err != nil {
		return err
	}
	if err := v.checkStringLength(data, schema, path, issues); err != nil {
		return err
	}
	if err := v.checkObject(data, schema, path, issues); err != nil {
		return err
	}
	return v.checkArray(data, schema, path, issues)
}

// checkType enforces the "type" keyword. Per Draft-4, "integer" accepts only
// integral numeric values while "number" accepts any numeric value.
// "format" is advisory in Draft-4 and deliberately not enforced.
func (v *Validator) checkType(data any, schema map[string]any, path string, issues *[]Issue) error {
	raw, ok := schema["type"]
	if !ok {
		return nil
	}

	var names []string
	switch t := raw.(type) {
	case string:
		names = []string{t}
	case []any:
		for _, n := range t {
			name, ok := n.(string)
			if !ok {
				return &specerrors.SchemaError{
					Path: path, Keyword: "type",
					Message: fmt.Sprintf("expected string or array of strings, got element %T", n),
				}
			}
			names = append(names, name)
		}
	default:
		return &specerrors.SchemaError{
			Path: path, Keyword: "type",
			Message: fmt.Sprintf("expected string or array of strings, got %T", raw),
		}
	}
	if len(names) == 0 {
		return &specerrors.SchemaError{Path: path, Keyword: "type", Message: "type array must not be empty"}
	}

	for _, name := range names {
		if !validTypeNames[name] {
			return &specerrors.SchemaError{
				Path: path, Keyword: "type",
				Message: fmt.Sprintf("unknown type %q", name),
			}
		}
		if typeMatches(name, data) {
			return nil
		}
	}

	addIssue(issues, path, fmt.Sprintf("invalid type: expected %s, got %s",
		joinOr(names), jsonTypeName(data)))
	return nil
}

// checkEnum enforces exact-value membership.
func (v *Validator) checkEnum(data any, schema map[string]any, path string, issues *[]Issue) error {
	raw, ok := schema["enum"]
	if !ok {
		return nil
	}
	allowed, ok := raw.([]any)
	if !ok {
		return &specerrors.SchemaError{
			Path: path, Keyword: "enum",
			Message: fmt.Sprintf("expected array, got %T", raw),
		}
	}
	if len(allowed) == 0 {
		return &specerrors.SchemaError{Path: path, Keyword: "enum", Message: "enum must not be empty"}
	}

	for _, candidate := range allowed {
		if valueEqual(data, candidate) {
			return nil
		}
	}
	addIssue(issues, path, fmt.Sprintf("%v is not one of the allowed enum values", data))
	return nil
}

// checkNumericBounds enforces minimum/maximum and their exclusive modifiers.
// The keywords are structurally checked whenever present, but only applied
// to numeric data.
func (v *Validator) checkNumericBounds(data any, schema map[string]any, path string, issues *[]Issue) error {
	minVal, hasMin, err := schemaNumber(schema, "minimum", path)
	if err != nil {
		return err
	}
	maxVal, hasMax, err := schemaNumber(schema, "maximum", path)
	if err != nil {
		return err
	}
	exclMin, hasExclMin, err := schemaBool(schema, "exclusiveMinimum", path)
	if err != nil {
		return err
	}
	exclMax, hasExclMax, err := schemaBool(schema, "exclusiveMaximum", path)
	if err != nil {
		return err
	}
	// Draft-4: the exclusive modifiers are only meaningful alongside their bound.
	if hasExclMin && !hasMin {
		return &specerrors.SchemaError{Path: path, Keyword: "exclusiveMinimum", Message: "minimum must also be present"}
	}
	if hasExclMax && !hasMax {
		return &specerrors.SchemaError{Path: path, Keyword: "exclusiveMaximum", Message: "maximum must also be present"}
	}

	num, isNumeric := numericValue(data)
	if !isNumeric {
		return nil
	}

	if hasMin {
		if exclMin {
			if num <= minVal {
				addIssue(issues, path, fmt.Sprintf("%v is less than or equal to exclusive minimum %v", data, minVal))
			}
		} else if num < minVal {
			addIssue(issues, path, fmt.Sprintf("%v is less than minimum %v", data, minVal))
		}
	}
	if hasMax {
		if exclMax {
			if num >= maxVal {
				addIssue(issues, path, fmt.Sprintf("%v is greater than or equal to exclusive maximum %v", data, maxVal))
			}
		} else if num > maxVal {
			addIssue(issues, path, fmt.Sprintf("%v is greater than maximum %v", data, maxVal))
		}
	}
	return nil
}

// checkStringLength enforces minLength/maxLength, counted in code points.
func (v *Validator) checkStringLength(data any, schema map[string]any, path string, issues *[]Issue) error {
	minLen, hasMin, err := schemaNonNegativeInt(schema, "minLength", path)
	if err != nil {
		return err
	}
	maxLen, hasMax, err := schemaNonNegativeInt(schema, "maxLength", path)
	if err != nil {
		return err
	}

	s, isString := data.(string)
	if !isString {
		return nil
	}
	length := utf8.RuneCountInString(s)

	if hasMin && length < minLen {
		addIssue(issues, path, fmt.Sprintf("string length %d is less than minLength %d", length, minLen))
	}
	if hasMax && length > maxLen {
		addIssue(issues, path, fmt.Sprintf("string length %d is greater than maxLength %d", length, maxLen))
	}
	return nil
}

// checkObject enforces required, properties, and additionalProperties.
// required is checked before properties; keys are visited in sorted order so
// verdicts are deterministic.
func (v *Validator) checkObject(data any, schema map[string]any, path string, issues *[]Issue) error {
	required, err := schemaStringList(schema, "required", path)
	if err != nil {
		return err
	}
	properties, err := schemaSubschemaMap(schema, "properties", path)
	if err != nil {
		return err
	}

	var (
		addBool      bool
		addSchema    map[string]any
		hasAddSchema bool
	)
	switch raw := schema["additionalProperties"].(type) {
	case nil:
	case bool:
		addBool = raw
	case map[string]any:
		addSchema = raw
		hasAddSchema = true
	default:
		return &specerrors.SchemaError{
			Path: path, Keyword: "additionalProperties",
			Message: fmt.Sprintf("expected boolean or object, got %T", raw),
		}
	}

	obj, isObject := data.(map[string]any)
	if !isObject {
		return nil
	}

	for _, name := range required {
		if _, present := obj[name]; !present {
			addIssue(issues, path, fmt.Sprintf("%q is a required property", name))
		}
	}

	for _, key := range sortedKeys(obj) {
		sub, declared := properties[key]
		if declared {
			if err := v.validateValue(obj[key], sub, joinPath(path, key), issues); err != nil {
				return err
			}
			continue
		}
		if _, hasRaw := schema["additionalProperties"]; !hasRaw {
			continue
		}
		if hasAddSchema {
			if err := v.validateValue(obj[key], addSchema, joinPath(path, key), issues); err != nil {
				return err
			}
		} else if !addBool {
			addIssue(issues, path, fmt.Sprintf("additional property %q is not allowed", key))
		}
	}
	return nil
}

// checkArray enforces items (single or tuple form), minItems/maxItems, and
// uniqueItems. Elements beyond a tuple schema pass unchecked, matching the
// Draft-4 additionalItems default.
func (v *Validator) checkArray(data any, schema map[string]any, path string, issues *[]Issue) error {
	minItems, hasMin, err := schemaNonNegativeInt(schema, "minItems", path)
	if err != nil {
		return err
	}
	maxItems, hasMax, err := schemaNonNegativeInt(schema, "maxItems", path)
	if err != nil {
		return err
	}
	unique, _, err := schemaBool(schema, "uniqueItems", path)
	if err != nil {
		return err
	}

	var (
		single map[string]any
		tuple  []map[string]any
	)
	switch raw := schema["items"].(type) {
	case nil:
	case map[string]any:
		single = raw
	case []any:
		for i, el := range raw {
			sub, ok := el.(map[string]any)
			if !ok {
				return &specerrors.SchemaError{
					Path: path, Keyword: "items",
					Message: fmt.Sprintf("tuple element %d: expected object, got %T", i, el),
				}
			}
			tuple = append(tuple, sub)
		}
	default:
		return &specerrors.SchemaError{
			Path: path, Keyword: "items",
			Message: fmt.Sprintf("expected object or array of objects, got %T", raw),
		}
	}

	arr, isArray := data.([]any)
	if !isArray {
		return nil
	}

	if hasMin && len(arr) < minItems {
		addIssue(issues, path, fmt.Sprintf("array length %d is less than minItems %d", len(arr), minItems))
	}
	if hasMax && len(arr) > maxItems {
		addIssue(issues, path, fmt.Sprintf("array length %d is greater than maxItems %d", len(arr), maxItems))
	}

	for i, element := range arr {
		var sub map[string]any
		switch {
		case single != nil:
			sub = single
		case i < len(tuple):
			sub = tuple[i]
		default:
			continue
		}
		if err := v.validateValue(element, sub, joinPath(path, strconv.Itoa(i)), issues); err != nil {
			return err
		}
	}

	if unique {
		for i := 0; i < len(arr); i++ {
			for j := i + 1; j < len(arr); j++ {
				if valueEqual(arr[i], arr[j]) {
					addIssue(issues, path, fmt.Sprintf("array items at indexes %d and %d are not unique", i, j))
				}
			}
		}
	}
	return nil
}

// --- schema keyword accessors -------------------------------------------

func schemaNumber(schema map[string]any, keyword, path string) (float64, bool, error) {
	raw, ok := schema[keyword]
	if !ok {
		return 0, false, nil
	}
	n, ok := numericValue(raw)
	if !ok {
		return 0, false, &specerrors.SchemaError{
			Path: path, Keyword: keyword,
			Message: fmt.Sprintf("expected number, got %T", raw),
		}
	}
	return n, true, nil
}

func schemaNonNegativeInt(schema map[string]any, keyword, path string) (int, bool, error) {
	raw, ok := schema[keyword]
	if !ok {
		return 0, false, nil
	}
	n, ok := numericValue(raw)
	if !ok || n != float64(int(n)) || n < 0 {
		return 0, false, &specerrors.SchemaError{
			Path: path, Keyword: keyword,
			Message: fmt.Sprintf("expected non-negative integer, got %v", raw),
		}
	}
	return int(n), true, nil
}

func schemaBool(schema map[string]any, keyword, path string) (bool, bool, error) {
	raw, ok := schema[keyword]
	if !ok {
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, false, &specerrors.SchemaError{
			Path: path, Keyword: keyword,
			Message: fmt.Sprintf("expected boolean, got %T", raw),
		}
	}
	return b, true, nil
}

func schemaStringList(schema map[string]any, keyword, path string) ([]string, error) {
	raw, ok := schema[keyword]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &specerrors.SchemaError{
			Path: path, Keyword: keyword,
			Message: fmt.Sprintf("expected array of strings, got %T", raw),
		}
	}
	out := make([]string, 0, len(list))
	for _, el := range list {
		s, ok := el.(string)
		if !ok {
			return nil, &specerrors.SchemaError{
				Path: path, Keyword: keyword,
				Message: fmt.Sprintf("expected array of strings, got element %T", el),
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func schemaSubschemaMap(schema map[string]any, keyword, path string) (map[string]map[string]any, error) {
	raw, ok := schema[keyword]
	if !ok {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &specerrors.SchemaError{
			Path: path, Keyword: keyword,
			Message: fmt.Sprintf("expected object, got %T", raw),
		}
	}
	out := make(map[string]map[string]any, len(m))
	for key, val := range m {
		sub, ok := val.(map[string]any)
		if !ok {
			return nil, &specerrors.SchemaError{
				Path: joinPath(path, key), Keyword: keyword,
				Message: fmt.Sprintf("expected schema object, got %T", val),
			}
		}
		out[key] = sub
	}
	return out, nil
}

// --- value helpers -------------------------------------------------------

// numericValue extracts a numeric value from JSON- or YAML-decoded data.
// Booleans are not numbers.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// typeMatches reports whether data matches a Draft-4 primitive type name.
// JSON decoding yields float64 for every number, so "integer" accepts an
// integral float64.
func typeMatches(name string, data any) bool {
	switch name {
	case "string":
		_, ok := data.(string)
		return ok
	case "boolean":
		_, ok := data.(bool)
		return ok
	case "object":
		_, ok := data.(map[string]any)
		return ok
	case "array":
		_, ok := data.([]any)
		return ok
	case "null":
		return data == nil
	case "number":
		_, ok := numericValue(data)
		return ok
	case "integer":
		n, ok := numericValue(data)
		return ok && n == float64(int64(n))
	default:
		return false
	}
}

// jsonTypeName names the JSON type of a decoded value for error messages.
func jsonTypeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		if _, ok := numericValue(t); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

// valueEqual compares decoded JSON values structurally, treating numeric
// values by value so an int from YAML equals the same float64 from JSON.
func valueEqual(a, b any) bool {
	switch ta := a.(type) {
	case map[string]any:
		tb, ok := b.(map[string]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for k, va := range ta {
			vb, present := tb[k]
			if !present || !valueEqual(va, vb) {
				return false
			}
		}
		return true
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !valueEqual(ta[i], tb[i]) {
				return false
			}
		}
		return true
	default:
		if na, ok := numericValue(a); ok {
			nb, okb := numericValue(b)
			return okb && na == nb
		}
		return a == b
	}
}

// joinOr renders a type-name list as "a", "a or b", "a, b or c".
func joinOr(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func joinPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}

func addIssue(issues *[]Issue, path, message string) {
	*issues = append(*issues, Issue{Path: path, Message: message})
}
