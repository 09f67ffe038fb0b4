package validator

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiverify/swagschema/spec"
	"github.com/apiverify/swagschema/specerrors"
)

func loadDoc(t *testing.T, name string) *spec.Document {
	t.Helper()
	doc, err := spec.Load(spec.WithFilePath(filepath.Join("..", "testdata", name)))
	require.NoError(t, err)
	return doc
}

func petSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"name", "photoUrls"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"photoUrls": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
}

func TestValidateMissingRequiredProperty(t *testing.T) {
	v := New()

	result, err := v.Validate(map[string]any{"photoUrls": []any{"http://x"}}, petSchema())
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message(), "name")
}

func TestValidateWellFormedObject(t *testing.T) {
	v := New()

	result, err := v.Validate(map[string]any{
		"name":      "Rex",
		"photoUrls": []any{"http://x"},
	}, petSchema())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Message())
}

func TestValidateIntegerBounds(t *testing.T) {
	schema := map[string]any{
		"type":    "integer",
		"minimum": float64(1),
		"maximum": float64(10),
	}

	tests := []struct {
		name  string
		data  any
		valid bool
	}{
		{"above maximum", float64(11), false},
		{"inclusive maximum", float64(10), true},
		{"inclusive minimum", float64(1), true},
		{"below minimum", float64(0), false},
	}
	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.Validate(tt.data, schema)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, result.Message())
		})
	}
}

func TestValidateExclusiveBounds(t *testing.T) {
	schema := map[string]any{
		"type":             "number",
		"minimum":          float64(0),
		"exclusiveMinimum": true,
	}
	v := New()

	result, err := v.Validate(float64(0), schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message(), "exclusive minimum")

	result, err = v.Validate(float64(0.5), schema)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateIntegerRejectsFraction(t *testing.T) {
	v := New()

	result, err := v.Validate(float64(3.5), map[string]any{"type": "integer"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message(), "invalid type")

	// An integral float64, as JSON decoding produces, is an integer.
	result, err = v.Validate(float64(3), map[string]any{"type": "integer"})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateBooleanIsNotNumber(t *testing.T) {
	v := New()

	result, err := v.Validate(true, map[string]any{"type": "number"})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateTypeArray(t *testing.T) {
	schema := map[string]any{"type": []any{"string", "null"}}
	v := New()

	for _, data := range []any{"text", nil} {
		result, err := v.Validate(data, schema)
		require.NoError(t, err)
		assert.True(t, result.Valid)
	}

	result, err := v.Validate(float64(1), schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message(), "string or null")
}

func TestValidateEnum(t *testing.T) {
	schema := map[string]any{
		"type": "string",
		"enum": []any{"available", "pending", "sold"},
	}
	v := New()

	result, err := v.Validate("pending", schema)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = v.Validate("lost", schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message(), "enum")
}

func TestValidateStringLength(t *testing.T) {
	schema := map[string]any{
		"type":      "string",
		"minLength": float64(2),
		"maxLength": float64(4),
	}
	v := New()

	result, err := v.Validate("ok", schema)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = v.Validate("x", schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message(), "minLength")

	// Lengths are counted in code points, not bytes.
	result, err = v.Validate("héllo", schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message(), "maxLength")
}

func TestValidateArrayConstraints(t *testing.T) {
	schema := map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "integer"},
		"minItems":    float64(1),
		"maxItems":    float64(3),
		"uniqueItems": true,
	}
	v := New()

	result, err := v.Validate([]any{float64(1), float64(2)}, schema)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = v.Validate([]any{}, schema)
	require.NoError(t, err)
	assert.Contains(t, result.Message(), "minItems")

	result, err = v.Validate([]any{float64(1), float64(1)}, schema)
	require.NoError(t, err)
	assert.Contains(t, result.Message(), "not unique")

	result, err = v.Validate([]any{float64(1), "two"}, schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "1", result.Issues[0].Path, "array index must appear as a bare integer segment")
}

func TestValidateTupleItems(t *testing.T) {
	schema := map[string]any{
		"type": "array",
		"items": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "integer"},
		},
	}
	v := New()

	result, err := v.Validate([]any{"id", float64(7)}, schema)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = v.Validate([]any{float64(7), "id"}, schema)
	require.NoError(t, err)
	assert.Len(t, result.Issues, 2)

	// Elements past the tuple schemas are unconstrained.
	result, err = v.Validate([]any{"id", float64(7), true}, schema)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateAdditionalProperties(t *testing.T) {
	v := New()

	closed := map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"id": map[string]any{"type": "integer"}},
		"additionalProperties": false,
	}
	result, err := v.Validate(map[string]any{"id": float64(1), "extra": "x"}, closed)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message(), `"extra" is not allowed`)

	schemaForm := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "integer"},
	}
	result, err = v.Validate(map[string]any{"count": "three"}, schemaForm)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "count", result.Issues[0].Path)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	v := New()

	result, err := v.Validate(map[string]any{
		"name":      float64(7),
		"photoUrls": "not-an-array",
	}, petSchema())
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "name", result.Issues[0].Path)
	assert.Equal(t, "photoUrls", result.Issues[1].Path)
	assert.Contains(t, result.Message(), "; ")
}

func TestValidateDeterministicIssueOrder(t *testing.T) {
	v := New()

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"b": map[string]any{"type": "string"},
			"a": map[string]any{"type": "string"},
			"c": map[string]any{"type": "string"},
		},
	}
	data := map[string]any{"c": float64(1), "a": float64(1), "b": float64(1)}

	for i := 0; i < 5; i++ {
		result, err := v.Validate(data, schema)
		require.NoError(t, err)
		require.Len(t, result.Issues, 3)
		assert.Equal(t, "a", result.Issues[0].Path)
		assert.Equal(t, "b", result.Issues[1].Path)
		assert.Equal(t, "c", result.Issues[2].Path)
	}
}

func TestValidateTopLevelViolationHasNoPathPrefix(t *testing.T) {
	v := New()

	result, err := v.Validate("text", map[string]any{"type": "integer"})
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Empty(t, result.Issues[0].Path)
	assert.Equal(t, result.Issues[0].Message, result.Message(),
		"top-level violations render without a path prefix")
}

func TestValidateSchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema map[string]any
	}{
		{"non-numeric minimum", map[string]any{"type": "integer", "minimum": "one"}},
		{"exclusiveMinimum without minimum", map[string]any{"type": "number", "exclusiveMinimum": true}},
		{"negative minLength", map[string]any{"type": "string", "minLength": float64(-1)}},
		{"unknown type name", map[string]any{"type": "decimal"}},
		{"non-list required", map[string]any{"type": "object", "required": "name"}},
		{"non-object properties", map[string]any{"type": "object", "properties": []any{"x"}}},
		{"empty enum", map[string]any{"enum": []any{}}},
	}
	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(map[string]any{}, tt.schema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, specerrors.ErrSchema))

			var schemaErr *specerrors.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.NotEmpty(t, schemaErr.Keyword)
		})
	}
}

func TestValidateResponseNestedRefPath(t *testing.T) {
	doc := loadDoc(t, "petstore-2.0.json")
	v := New()

	// Category is reached through Pet's $ref; its name carries minLength 1.
	data := map[string]any{
		"name":      "Rex",
		"photoUrls": []any{"http://x"},
		"category":  map[string]any{"name": ""},
	}
	result, err := v.ValidateResponse(data, doc, "/pet/{petId}", "get", 200)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "category.name", result.Issues[0].Path)
}

func TestValidateResponseDefaultFallback(t *testing.T) {
	doc := loadDoc(t, "petstore-2.0.json")
	v := New()

	// /user post documents only a "default" response.
	result, err := v.ValidateResponse(map[string]any{"code": "not-an-int"}, doc, "/user", "post", 503)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.False(t, result.NoSchema)
}

func TestValidateResponseUndocumentedIsValid(t *testing.T) {
	doc := loadDoc(t, "petstore-2.0.json")
	v := New()

	result, err := v.ValidateResponse(map[string]any{"anything": true}, doc, "/pet", "post", 405)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.True(t, result.NoSchema)
	assert.Empty(t, result.Message())
}

func TestValidateRequestBody(t *testing.T) {
	doc := loadDoc(t, "petstore-2.0.json")
	v := New()

	result, err := v.ValidateRequest(map[string]any{"photoUrls": []any{}}, doc, "/pet", "post")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message(), "name")

	result, err = v.ValidateRequest(map[string]any{"quantity": float64(11)}, doc, "/store/order", "post")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "quantity", result.Issues[0].Path)
}

func TestValidateRequestUndocumentedIsValid(t *testing.T) {
	doc := loadDoc(t, "petstore-2.0.json")
	v := New()

	// GET /store/inventory declares no body parameter.
	result, err := v.ValidateRequest(map[string]any{}, doc, "/store/inventory", "get")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.True(t, result.NoSchema)
}

func TestValidateEmptySchemaAcceptsEverything(t *testing.T) {
	v := New()

	for _, data := range []any{nil, true, "x", float64(3), []any{}, map[string]any{"a": float64(1)}} {
		result, err := v.Validate(data, map[string]any{})
		require.NoError(t, err)
		assert.True(t, result.Valid)
	}
}

func TestValidateFormatIsAdvisory(t *testing.T) {
	v := New()

	result, err := v.Validate("definitely not a date", map[string]any{
		"type":   "string",
		"format": "date-time",
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestIssueString(t *testing.T) {
	assert.Equal(t, "a.b: bad", Issue{Path: "a.b", Message: "bad"}.String())
	assert.Equal(t, "bad", Issue{Message: "bad"}.String())
}
