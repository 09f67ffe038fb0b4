package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/apiverify/swagschema"
	"github.com/apiverify/swagschema/internal/mcpserver"
	"github.com/apiverify/swagschema/resolver"
	"github.com/apiverify/swagschema/spec"
	"github.com/apiverify/swagschema/validator"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("swagschema v%s\n", swagschema.Version())
	case "help", "-h", "--help":
		printUsage()
	case "info":
		if err := handleInfo(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "resolve":
		if err := handleResolve(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		ok, err := handleValidate(os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`swagschema v%s - Swagger 2.0 schema resolution and validation

Usage: swagschema <command> [flags] [arguments]

Commands:
  info      Print a structural summary of a specification
  resolve   Expand every local $ref in a definition or pointer target
  validate  Validate a JSON payload against a documented schema
  mcp       Run the MCP server over stdio
  version   Print version information
  help      Print this help message

Run 'swagschema <command> -h' for command-specific flags.
`, swagschema.Version())
}

func handleInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: swagschema info <file>\n\n")
		_, _ = fmt.Fprintf(output, "Print a structural summary of a Swagger 2.0 specification.\n")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("info command requires exactly one file path")
	}

	doc, err := spec.Load(spec.WithFilePath(fs.Arg(0)))
	if err != nil {
		return err
	}

	fmt.Printf("Title:   %s\n", doc.Title())
	fmt.Printf("Swagger: %s\n", doc.SwaggerVersion())
	fmt.Printf("Format:  %s\n", doc.Format())

	defs := doc.Definitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("\nDefinitions (%d):\n", len(names))
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}

	paths := doc.Paths()
	pathKeys := make([]string, 0, len(paths))
	for p := range paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)
	fmt.Printf("\nPaths (%d):\n", len(pathKeys))
	for _, p := range pathKeys {
		pathItem, ok := paths[p].(map[string]any)
		if !ok {
			continue
		}
		methods := make([]string, 0, len(pathItem))
		for m := range pathItem {
			methods = append(methods, strings.ToUpper(m))
		}
		sort.Strings(methods)
		fmt.Printf("  %s  [%s]\n", p, strings.Join(methods, " "))
	}
	return nil
}

// resolveFlags contains flags for the resolve command
type resolveFlags struct {
	definition string
	pointer    string
	format     string
}

func setupResolveFlags() (*flag.FlagSet, *resolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &resolveFlags{}

	fs.StringVar(&flags.definition, "definition", "", "definition name to resolve (e.g. Pet)")
	fs.StringVar(&flags.pointer, "pointer", "", "local JSON pointer to resolve (e.g. #/definitions/Pet)")
	fs.StringVar(&flags.format, "format", "json", "output format: json or yaml")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: swagschema resolve [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Expand every local $ref in a schema into a self-contained form.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  swagschema resolve --definition Pet swagger.json\n")
		_, _ = fmt.Fprintf(output, "  swagschema resolve --pointer '#/definitions/Order' --format yaml swagger.yaml\n")
	}
	return fs, flags
}

func handleResolve(args []string) error {
	fs, flags := setupResolveFlags()
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("resolve command requires exactly one file path")
	}

	var ref string
	switch {
	case flags.definition != "" && flags.pointer != "":
		return fmt.Errorf("provide either --definition or --pointer, not both")
	case flags.definition != "":
		ref = "#/definitions/" + flags.definition
	case flags.pointer != "":
		ref = flags.pointer
	default:
		return fmt.Errorf("one of --definition or --pointer is required")
	}

	doc, err := spec.Load(spec.WithFilePath(fs.Arg(0)))
	if err != nil {
		return err
	}

	fragment, err := doc.ResolvePointer(ref)
	if err != nil {
		return err
	}
	resolved, err := resolver.New().Resolve(doc, fragment)
	if err != nil {
		return err
	}
	return writeDocument(os.Stdout, resolved, flags.format)
}

// validateFlags contains flags for the validate command
type validateFlags struct {
	path     string
	method   string
	status   int
	response bool
	data     string
	dataFile string
}

func setupValidateFlags() (*flag.FlagSet, *validateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &validateFlags{}

	fs.StringVar(&flags.path, "path", "", "API path template (e.g. /pet/{petId})")
	fs.StringVar(&flags.method, "method", "", "HTTP method (case-insensitive)")
	fs.IntVar(&flags.status, "status", 0, "HTTP status code (response validation)")
	fs.BoolVar(&flags.response, "response", false, "validate a response payload instead of a request body")
	fs.StringVar(&flags.data, "data", "", "inline JSON payload to validate")
	fs.StringVar(&flags.dataFile, "data-file", "", "path to a JSON payload file to validate")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: swagschema validate [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Validate a JSON payload against the schema documented for an endpoint.\n")
		_, _ = fmt.Fprintf(output, "Exits 1 when the payload is invalid.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  swagschema validate --path /pet --method post --data '{\"name\":\"Rex\"}' swagger.json\n")
		_, _ = fmt.Fprintf(output, "  swagschema validate --response --path /pet/{petId} --method get --status 200 --data-file pet.json swagger.json\n")
	}
	return fs, flags
}

func handleValidate(args []string) (bool, error) {
	fs, flags := setupValidateFlags()
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return true, nil
		}
		return false, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return false, fmt.Errorf("validate command requires exactly one file path")
	}
	if flags.path == "" || flags.method == "" {
		return false, fmt.Errorf("--path and --method are required")
	}
	if flags.response && flags.status == 0 {
		return false, fmt.Errorf("--status is required with --response")
	}

	payload, err := readPayload(flags)
	if err != nil {
		return false, err
	}
	var data any
	if err := json.Unmarshal(payload, &data); err != nil {
		return false, fmt.Errorf("payload is not valid JSON: %w", err)
	}

	doc, err := spec.Load(spec.WithFilePath(fs.Arg(0)))
	if err != nil {
		return false, err
	}

	v := validator.New()
	var result *validator.Result
	if flags.response {
		result, err = v.ValidateResponse(data, doc, flags.path, flags.method, flags.status)
	} else {
		result, err = v.ValidateRequest(data, doc, flags.path, flags.method)
	}
	if err != nil {
		return false, err
	}

	switch {
	case result.NoSchema:
		fmt.Println("valid (no schema documented for this endpoint)")
	case result.Valid:
		fmt.Println("valid")
	default:
		fmt.Println("invalid:")
		for _, issue := range result.Issues {
			fmt.Printf("  - %s\n", issue)
		}
	}
	return result.Valid, nil
}

func readPayload(flags *validateFlags) ([]byte, error) {
	switch {
	case flags.data != "" && flags.dataFile != "":
		return nil, fmt.Errorf("provide either --data or --data-file, not both")
	case flags.data != "":
		return []byte(flags.data), nil
	case flags.dataFile != "":
		return os.ReadFile(flags.dataFile)
	default:
		return nil, fmt.Errorf("one of --data or --data-file is required")
	}
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

// writeDocument renders v to w in the requested format.
func writeDocument(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q; use json or yaml", format)
	}
}
