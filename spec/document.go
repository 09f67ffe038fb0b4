// Package spec loads Swagger 2.0 specification documents and exposes
// read-only lookups over their definitions, paths, and schemas.
//
// A Document is immutable after Load returns: every accessor is a read-only
// projection of the parsed tree, so a single Document may be shared freely
// across goroutines for the life of the process.
package spec

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/apiverify/swagschema/internal/jsontree"
	"github.com/apiverify/swagschema/specerrors"
)

// Document is an immutable, parsed Swagger 2.0 specification.
type Document struct {
	root       map[string]any
	sourcePath string
	format     SourceFormat
	logger     Logger
}

// Load reads and parses a Swagger 2.0 specification.
//
// It fails with a *specerrors.NotFoundError if the file does not exist and a
// *specerrors.ParseError if the content cannot be decoded. Both are fatal:
// callers must not proceed without a loaded document.
//
// Example:
//
//	doc, err := spec.Load(spec.WithFilePath("swagger.json"))
func Load(opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("spec: invalid options: %w", err)
	}

	var (
		data       []byte
		sourcePath string
		format     SourceFormat
	)

	if cfg.filePath != nil {
		sourcePath = *cfg.filePath
		data, err = os.ReadFile(sourcePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &specerrors.NotFoundError{Path: sourcePath, Cause: err}
			}
			return nil, fmt.Errorf("spec: reading %s: %w", sourcePath, err)
		}
		format = detectFormatFromPath(sourcePath)
	} else {
		data = cfg.bytes
		sourcePath = "<bytes>"
	}
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	root, err := decodeDocument(data, format, sourcePath)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		root:       root,
		sourcePath: sourcePath,
		format:     format,
		logger:     cfg.logger,
	}
	doc.logger.Info("loaded specification",
		"title", doc.Title(),
		"path", sourcePath,
		"format", format.String(),
	)
	return doc, nil
}

// decodeDocument parses data in the given format into the JSON tree shape.
func decodeDocument(data []byte, format SourceFormat, sourcePath string) (map[string]any, error) {
	var decoded any
	switch format {
	case SourceFormatYAML:
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return nil, &specerrors.ParseError{Path: sourcePath, Format: "yaml", Cause: err}
		}
		decoded = jsontree.Normalize(decoded)
	default:
		// Unknown content falls through to the JSON decoder so that the
		// error reports against the stricter format.
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, &specerrors.ParseError{Path: sourcePath, Format: "json", Cause: err}
		}
	}

	root, ok := decoded.(map[string]any)
	if !ok {
		return nil, &specerrors.ParseError{
			Path:    sourcePath,
			Format:  format.String(),
			Message: fmt.Sprintf("document root must be an object, got %T", decoded),
		}
	}
	return root, nil
}

// SourcePath returns the path the document was loaded from, or "<bytes>" for
// in-memory sources.
func (d *Document) SourcePath() string {
	return d.sourcePath
}

// Format returns the detected source format.
func (d *Document) Format() SourceFormat {
	return d.format
}

// Title returns the document's declared info.title, or "" if absent.
func (d *Document) Title() string {
	info, _ := d.root["info"].(map[string]any)
	title, _ := info["title"].(string)
	return title
}

// SwaggerVersion returns the declared swagger version string (normally "2.0").
func (d *Document) SwaggerVersion() string {
	v, _ := d.root["swagger"].(string)
	return v
}

// Definitions returns the definitions object, or an empty map if absent.
// The returned map is a read-only view; callers must not mutate it.
func (d *Document) Definitions() map[string]any {
	if defs, ok := d.root["definitions"].(map[string]any); ok {
		return defs
	}
	return map[string]any{}
}

// Paths returns the paths object, or an empty map if absent.
// The returned map is a read-only view; callers must not mutate it.
func (d *Document) Paths() map[string]any {
	if paths, ok := d.root["paths"].(map[string]any); ok {
		return paths
	}
	return map[string]any{}
}

// DefinitionSchema returns the named definition's raw schema fragment,
// possibly containing $ref nodes. Unknown names fail with a
// *specerrors.ReferenceNotFoundError.
func (d *Document) DefinitionSchema(name string) (map[string]any, error) {
	def, ok := d.Definitions()[name].(map[string]any)
	if !ok {
		return nil, &specerrors.ReferenceNotFoundError{
			Ref:     "#/definitions/" + name,
			Segment: name,
		}
	}
	d.logger.Debug("retrieved definition schema", "name", name)
	return def, nil
}

// ResolvePointer walks a local JSON pointer of the form #/a/b/c through the
// document and returns the addressed value.
//
// It fails with a *specerrors.InvalidReferenceError when ref is not a local
// pointer, and a *specerrors.ReferenceNotFoundError when any segment is
// absent along the path. Array segments are indexed per RFC 6901.
func (d *Document) ResolvePointer(ref string) (any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, &specerrors.InvalidReferenceError{
			Ref:     ref,
			Message: "only local references are supported",
		}
	}

	segments := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	current := any(d.root)
	for _, segment := range segments {
		segment = jsontree.UnescapeToken(segment)

		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, &specerrors.ReferenceNotFoundError{Ref: ref, Segment: segment}
			}
			current = next

		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, &specerrors.ReferenceNotFoundError{Ref: ref, Segment: segment}
			}
			current = node[index]

		default:
			return nil, &specerrors.ReferenceNotFoundError{Ref: ref, Segment: segment}
		}
	}
	return current, nil
}

// Operation returns the operation object for the given path template and
// HTTP method (case-insensitive), or false if either is undocumented.
func (d *Document) Operation(path, method string) (map[string]any, bool) {
	pathItem, ok := d.Paths()[path].(map[string]any)
	if !ok {
		d.logger.Warn("path not found in specification", "path", path)
		return nil, false
	}
	op, ok := pathItem[strings.ToLower(method)].(map[string]any)
	if !ok {
		d.logger.Warn("method not found for path", "path", path, "method", method)
		return nil, false
	}
	return op, true
}

// ResponseSchema returns the raw response body schema for the given endpoint
// and status code, consulting responses[status] and then responses["default"].
//
// Absence of a documented schema is a valid, non-exceptional outcome reported
// as false, never an error.
func (d *Document) ResponseSchema(path, method string, status int) (map[string]any, bool) {
	op, ok := d.Operation(path, method)
	if !ok {
		return nil, false
	}

	responses, _ := op["responses"].(map[string]any)
	response, ok := responses[strconv.Itoa(status)].(map[string]any)
	if !ok {
		response, ok = responses["default"].(map[string]any)
	}
	if !ok {
		d.logger.Warn("response not documented",
			"path", path, "method", method, "status", status)
		return nil, false
	}

	schema, ok := response["schema"].(map[string]any)
	if !ok {
		return nil, false
	}
	d.logger.Debug("retrieved response schema",
		"path", path, "method", method, "status", status)
	return schema, true
}

// RequestBodySchema returns the schema of the operation's single in=body
// parameter, or false if the endpoint or body parameter is undocumented.
func (d *Document) RequestBodySchema(path, method string) (map[string]any, bool) {
	op, ok := d.Operation(path, method)
	if !ok {
		return nil, false
	}

	params, _ := op["parameters"].([]any)
	for _, p := range params {
		param, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if in, _ := param["in"].(string); in != "body" {
			continue
		}
		schema, ok := param["schema"].(map[string]any)
		if !ok {
			return nil, false
		}
		d.logger.Debug("retrieved request body schema", "path", path, "method", method)
		return schema, true
	}
	return nil, false
}

// RequiredParameters returns the names of parameters marked required:true
// for the given operation. Unknown path/method yields an empty slice.
func (d *Document) RequiredParameters(path, method string) []string {
	op, ok := d.Operation(path, method)
	if !ok {
		return nil
	}

	params, _ := op["parameters"].([]any)
	var required []string
	for _, p := range params {
		param, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if req, _ := param["required"].(bool); !req {
			continue
		}
		if name, ok := param["name"].(string); ok {
			required = append(required, name)
		}
	}
	return required
}
