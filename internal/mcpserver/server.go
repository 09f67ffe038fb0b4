// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes swagschema capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apiverify/swagschema"
)

const serverInstructions = `swagschema MCP server — inspects Swagger 2.0 specs, resolves $ref schemas, and validates request/response payloads with Draft-4 semantics.

Configuration: All defaults are configurable via SWAGSCHEMA_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- SWAGSCHEMA_CACHE_ENABLED (default: true) — cache loaded specs per session
- SWAGSCHEMA_CACHE_MAX_SIZE (default: 10) — maximum cached specs
- SWAGSCHEMA_CACHE_TTL (default: 15m) — cache entry lifetime

Caching: Loaded specs are cached per session. File entries use path+mtime as key (auto-invalidated on change); inline content is keyed by hash.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "swagschema", Version: swagschema.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "spec_info",
		Description: "Load a Swagger 2.0 specification and return a structural summary: title, swagger version, definition names, and the operations under each path with their required parameters.",
	}, handleSpecInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_schema",
		Description: "Resolve a schema from a Swagger 2.0 specification into a self-contained form with every local $ref expanded. Address the schema by definition name or by a local JSON pointer such as #/definitions/Pet. Cyclic references are left as unexpanded $ref nodes rather than failing.",
	}, handleResolveSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_request",
		Description: "Validate a JSON request body against the body-parameter schema documented for a path and method. Reports every violated Draft-4 constraint with its dotted path. An operation without a documented body schema accepts any payload.",
	}, handleValidateRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_response",
		Description: "Validate a JSON response payload against the schema documented for a path, method, and status code, falling back to the 'default' response. Reports every violated Draft-4 constraint with its dotted path. An undocumented response accepts any payload.",
	}, handleValidateResponse)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
