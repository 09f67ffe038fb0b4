// Package swagschema provides schema extraction, $ref resolution, and JSON
// Schema Draft-4 data validation for Swagger 2.0 (OpenAPI 2.0) documents.
//
// The library consists of three primary packages:
//
//   - spec: load a Swagger 2.0 document and look up definition, request, and
//     response schemas
//   - resolver: expand local $ref pointers into self-contained schemas with
//     cycle detection
//   - validator: validate decoded JSON data against a schema using Draft-4
//     keyword semantics
//
// # Quick Start
//
// Load a specification and validate a response payload:
//
//	import (
//		"github.com/apiverify/swagschema/spec"
//		"github.com/apiverify/swagschema/validator"
//	)
//
//	doc, err := spec.Load(spec.WithFilePath("swagger.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	v := validator.New()
//	result, err := v.ValidateResponse(data, doc, "/pet/{petId}", "get", 200)
//	if err != nil {
//		log.Fatal(err) // broken spec or schema, not invalid data
//	}
//	if !result.Valid {
//		fmt.Println(result.Message())
//	}
//
// Invalid data is reported through the Result value; errors are reserved for
// broken specification documents and malformed schemas. See the specerrors
// package for the error taxonomy.
package swagschema
