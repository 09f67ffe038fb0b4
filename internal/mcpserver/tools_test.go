package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpecJSON = `{
  "swagger": "2.0",
  "info": {"title": "Pet Store"},
  "paths": {
    "/pets": {
      "post": {
        "summary": "Add a pet",
        "parameters": [
          {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Pet"}}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pet"}}
        }
      }
    }
  },
  "definitions": {
    "Category": {
      "type": "object",
      "properties": {"name": {"type": "string"}}
    },
    "Pet": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "category": {"$ref": "#/definitions/Category"}
      }
    }
  }
}`

func TestSpecInfoTool(t *testing.T) {
	input := specInfoInput{Spec: specInput{Content: testSpecJSON}}
	result, output, err := handleSpecInfo(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "Pet Store", output.Title)
	assert.Equal(t, "2.0", output.SwaggerVersion)
	assert.Equal(t, []string{"Category", "Pet"}, output.Definitions)
	require.Len(t, output.Operations, 1)
	assert.Equal(t, "/pets", output.Operations[0].Path)
	assert.Equal(t, "POST", output.Operations[0].Method)
	assert.Equal(t, []string{"body"}, output.Operations[0].RequiredParameters)
}

func TestSpecInfoTool_BadInput(t *testing.T) {
	result, _, err := handleSpecInfo(context.Background(), &mcp.CallToolRequest{}, specInfoInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestResolveSchemaTool_ByDefinition(t *testing.T) {
	input := resolveSchemaInput{
		Spec:       specInput{Content: testSpecJSON},
		Definition: "Pet",
	}
	result, output, err := handleResolveSchema(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "#/definitions/Pet", output.Ref)
	props := output.Schema.(map[string]any)["properties"].(map[string]any)
	category := props["category"].(map[string]any)
	assert.NotContains(t, category, "$ref")
	assert.Equal(t, "object", category["type"])
}

func TestResolveSchemaTool_ByPointer(t *testing.T) {
	input := resolveSchemaInput{
		Spec:    specInput{Content: testSpecJSON},
		Pointer: "#/definitions/Category",
	}
	result, output, err := handleResolveSchema(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, "#/definitions/Category", output.Ref)
}

func TestResolveSchemaTool_UnknownDefinition(t *testing.T) {
	input := resolveSchemaInput{
		Spec:       specInput{Content: testSpecJSON},
		Definition: "Ghost",
	}
	result, _, err := handleResolveSchema(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestValidateRequestTool(t *testing.T) {
	input := validateRequestInput{
		Spec:   specInput{Content: testSpecJSON},
		Path:   "/pets",
		Method: "post",
		Data:   `{"category": {"name": "dogs"}}`,
	}
	result, output, err := handleValidateRequest(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.False(t, output.Valid)
	assert.Contains(t, output.Message, "name")
}

func TestValidateResponseTool(t *testing.T) {
	input := validateResponseInput{
		Spec:   specInput{Content: testSpecJSON},
		Path:   "/pets",
		Method: "post",
		Status: 200,
		Data:   `{"name": "Rex"}`,
	}
	result, output, err := handleValidateResponse(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.True(t, output.Valid)
}

func TestValidateResponseTool_Undocumented(t *testing.T) {
	input := validateResponseInput{
		Spec:   specInput{Content: testSpecJSON},
		Path:   "/pets",
		Method: "post",
		Status: 404,
		Data:   `{"anything": true}`,
	}
	result, output, err := handleValidateResponse(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.True(t, output.Valid)
	assert.True(t, output.NoSchema)
	assert.Empty(t, output.Message)
}

func TestValidateRequestTool_BadJSON(t *testing.T) {
	input := validateRequestInput{
		Spec:   specInput{Content: testSpecJSON},
		Path:   "/pets",
		Method: "post",
		Data:   `{not json`,
	}
	result, _, err := handleValidateRequest(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
