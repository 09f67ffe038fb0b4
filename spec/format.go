package spec

import (
	"bytes"
	"path/filepath"
)

// SourceFormat identifies the serialization format of a specification source.
type SourceFormat int

const (
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = iota
	// SourceFormatJSON indicates a JSON source
	SourceFormatJSON
	// SourceFormatYAML indicates a YAML source
	SourceFormatYAML
)

// String returns the lowercase name of the format.
func (f SourceFormat) String() string {
	switch f {
	case SourceFormatJSON:
		return "json"
	case SourceFormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes
// JSON documents start with '{' or '[', while YAML documents do not
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
