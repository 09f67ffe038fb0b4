package mcpserver

import (
	"context"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type specInfoInput struct {
	Spec specInput `json:"spec" jsonschema:"The Swagger 2.0 document to summarize"`
}

type operationSummary struct {
	Path               string   `json:"path"`
	Method             string   `json:"method"`
	Summary            string   `json:"summary,omitempty"`
	RequiredParameters []string `json:"required_parameters,omitempty"`
}

type specInfoOutput struct {
	Title          string             `json:"title"`
	SwaggerVersion string             `json:"swagger_version"`
	Format         string             `json:"format"`
	Definitions    []string           `json:"definitions,omitempty"`
	Operations     []operationSummary `json:"operations,omitempty"`
}

func handleSpecInfo(_ context.Context, _ *mcp.CallToolRequest, input specInfoInput) (*mcp.CallToolResult, specInfoOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), specInfoOutput{}, nil
	}

	output := specInfoOutput{
		Title:          doc.Title(),
		SwaggerVersion: doc.SwaggerVersion(),
		Format:         doc.Format().String(),
	}

	for name := range doc.Definitions() {
		output.Definitions = append(output.Definitions, name)
	}
	sort.Strings(output.Definitions)

	paths := doc.Paths()
	pathKeys := make([]string, 0, len(paths))
	for p := range paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)

	for _, p := range pathKeys {
		pathItem, ok := paths[p].(map[string]any)
		if !ok {
			continue
		}
		methods := make([]string, 0, len(pathItem))
		for m := range pathItem {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		for _, m := range methods {
			op, ok := pathItem[m].(map[string]any)
			if !ok {
				continue
			}
			summary, _ := op["summary"].(string)
			output.Operations = append(output.Operations, operationSummary{
				Path:               p,
				Method:             strings.ToUpper(m),
				Summary:            summary,
				RequiredParameters: doc.RequiredParameters(p, m),
			})
		}
	}
	return nil, output, nil
}
