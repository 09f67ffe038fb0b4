package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apiverify/swagschema/resolver"
)

type resolveSchemaInput struct {
	Spec       specInput `json:"spec"                 jsonschema:"The Swagger 2.0 document containing the schema"`
	Definition string    `json:"definition,omitempty" jsonschema:"Name of a definition to resolve, e.g. Pet"`
	Pointer    string    `json:"pointer,omitempty"    jsonschema:"Local JSON pointer to a schema, e.g. #/definitions/Pet"`
}

type resolveSchemaOutput struct {
	Ref    string `json:"ref"`
	Schema any    `json:"schema"`
}

func handleResolveSchema(_ context.Context, _ *mcp.CallToolRequest, input resolveSchemaInput) (*mcp.CallToolResult, resolveSchemaOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), resolveSchemaOutput{}, nil
	}

	var ref string
	switch {
	case input.Definition != "" && input.Pointer != "":
		return errResult(fmt.Errorf("provide either definition or pointer, not both")), resolveSchemaOutput{}, nil
	case input.Definition != "":
		ref = "#/definitions/" + input.Definition
	case strings.HasPrefix(input.Pointer, "#/"):
		ref = input.Pointer
	default:
		return errResult(fmt.Errorf("one of definition or a local pointer (#/...) is required")), resolveSchemaOutput{}, nil
	}

	fragment, err := doc.ResolvePointer(ref)
	if err != nil {
		return errResult(err), resolveSchemaOutput{}, nil
	}

	resolved, err := resolver.New().Resolve(doc, fragment)
	if err != nil {
		return errResult(err), resolveSchemaOutput{}, nil
	}
	return nil, resolveSchemaOutput{Ref: ref, Schema: resolved}, nil
}
