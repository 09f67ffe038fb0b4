// Package resolver expands local $ref pointers in schema fragments into
// self-contained schemas.
//
// Resolution is purely functional: the source document and the input
// fragment are never mutated, and resolving the same fragment twice yields
// structurally equal results. Cycles are detected per traversal branch and
// degrade gracefully by leaving the offending $ref node unexpanded.
package resolver

import (
	"errors"
	"fmt"

	"github.com/apiverify/swagschema/internal/jsontree"
	"github.com/apiverify/swagschema/spec"
	"github.com/apiverify/swagschema/specerrors"
)

// MaxRefDepth is the maximum depth allowed for nested $ref resolution.
// Cycles never hit this limit (they are caught by the per-branch visited
// set); it guards against deep non-cyclic reference fan-out.
const MaxRefDepth = 100

// Resolver expands $ref nodes in schema fragments.
// The zero value is usable; New applies options. A Resolver holds only
// configuration and is safe for concurrent use.
type Resolver struct {
	logger spec.Logger
}

// New creates a Resolver with the given options.
func New(opts ...Option) *Resolver {
	r := &Resolver{logger: spec.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a deep copy of fragment with every local $ref replaced by
// its target content from doc, recursively.
//
// A reference that points back to an ancestor on the current traversal path
// is a cycle: the node is left as an unexpanded $ref, a warning is logged,
// and resolution continues. Two sibling branches referencing the same
// definition are not a cycle.
//
// It fails with a *specerrors.InvalidReferenceError for non-local refs, a
// *specerrors.ReferenceNotFoundError for dangling pointers, and a
// *specerrors.ResolutionDepthError past MaxRefDepth.
func (r *Resolver) Resolve(doc *spec.Document, fragment any) (any, error) {
	if doc == nil {
		return nil, fmt.Errorf("resolver: document must not be nil")
	}
	return r.resolve(doc, fragment, nil, 0)
}

// resolve walks one node. visited holds the refs followed on the path from
// the root to this node; following a ref extends a copy so sibling branches
// stay independent.
func (r *Resolver) resolve(doc *spec.Document, node any, visited map[string]bool, depth int) (any, error) {
	if depth > MaxRefDepth {
		return nil, &specerrors.ResolutionDepthError{Limit: MaxRefDepth}
	}

	switch n := node.(type) {
	case map[string]any:
		if ref, ok := jsontree.RefTarget(n); ok {
			return r.resolveRef(doc, n, ref, visited, depth)
		}

		out := make(map[string]any, len(n))
		for key, value := range n {
			resolved, err := r.resolveChild(doc, value, visited, depth)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil

	case []any:
		out := make([]any, len(n))
		for i, item := range n {
			resolved, err := r.resolveChild(doc, item, visited, depth)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	default:
		// Scalars are immutable; return as-is.
		return node, nil
	}
}

// resolveChild recurses into container values and passes scalars through.
func (r *Resolver) resolveChild(doc *spec.Document, value any, visited map[string]bool, depth int) (any, error) {
	switch value.(type) {
	case map[string]any, []any:
		return r.resolve(doc, value, visited, depth+1)
	default:
		return value, nil
	}
}

// resolveRef follows a single $ref node.
func (r *Resolver) resolveRef(doc *spec.Document, node map[string]any, ref string, visited map[string]bool, depth int) (any, error) {
	if visited[ref] {
		r.logger.Warn("circular reference detected; leaving unexpanded", "ref", ref)
		return jsontree.DeepCopy(node), nil
	}

	target, err := doc.ResolvePointer(ref)
	if err != nil {
		return nil, err
	}

	branch := make(map[string]bool, len(visited)+1)
	for k := range visited {
		branch[k] = true
	}
	branch[ref] = true

	r.logger.Debug("resolved reference", "ref", ref, "depth", depth)
	resolved, err := r.resolve(doc, target, branch, depth+1)
	if err != nil {
		var depthErr *specerrors.ResolutionDepthError
		if errors.As(err, &depthErr) && depthErr.Ref == "" {
			depthErr.Ref = ref
		}
		return nil, err
	}
	return resolved, nil
}
