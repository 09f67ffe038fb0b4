package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apiverify/swagschema/validator"
)

type validateRequestInput struct {
	Spec   specInput `json:"spec"   jsonschema:"The Swagger 2.0 document describing the API"`
	Path   string    `json:"path"   jsonschema:"API path template, e.g. /pet/{petId}"`
	Method string    `json:"method" jsonschema:"HTTP method, case-insensitive"`
	Data   string    `json:"data"   jsonschema:"The JSON request body to validate"`
}

type validateResponseInput struct {
	Spec   specInput `json:"spec"   jsonschema:"The Swagger 2.0 document describing the API"`
	Path   string    `json:"path"   jsonschema:"API path template, e.g. /pet/{petId}"`
	Method string    `json:"method" jsonschema:"HTTP method, case-insensitive"`
	Status int       `json:"status" jsonschema:"HTTP status code of the response"`
	Data   string    `json:"data"   jsonschema:"The JSON response payload to validate"`
}

type validateOutput struct {
	Valid    bool   `json:"valid"`
	NoSchema bool   `json:"no_schema,omitempty"`
	Message  string `json:"message,omitempty"`
}

func handleValidateRequest(_ context.Context, _ *mcp.CallToolRequest, input validateRequestInput) (*mcp.CallToolResult, validateOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	data, err := decodeData(input.Data)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result, err := validator.New().ValidateRequest(data, doc, input.Path, input.Method)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	return nil, verdictOutput(result), nil
}

func handleValidateResponse(_ context.Context, _ *mcp.CallToolRequest, input validateResponseInput) (*mcp.CallToolResult, validateOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	data, err := decodeData(input.Data)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result, err := validator.New().ValidateResponse(data, doc, input.Path, input.Method, input.Status)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	return nil, verdictOutput(result), nil
}

func decodeData(raw string) (any, error) {
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("data is not valid JSON: %w", err)
	}
	return data, nil
}

func verdictOutput(result *validator.Result) validateOutput {
	return validateOutput{
		Valid:    result.Valid,
		NoSchema: result.NoSchema,
		Message:  result.Message(),
	}
}
