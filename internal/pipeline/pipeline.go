// Package pipeline composes the pass sequence §6.2 names into the single
// external entry point a caller actually drives: copy, discover types,
// resolve types, desugar, lower — each transition gated by an
// ast.ErrorCollectorVisitor run, short-circuiting on the first pass that
// collects any errors, per §6.2/§7's "stops at the first pass whose
// post-validation collects any errors ... no partial IR is returned".
//
// The compiler core itself (internal/ast, internal/ir, internal/lower)
// stays side-effect-free; this package is where the ambient stack the
// core has no business depending on — structured logging, a per-call
// session id — actually lives, matching how Hassandahiru-Compiler-in-Go
// keeps its own pass orchestration (internal/compiler) thin and pushes
// concerns like that to its caller.
package pipeline

import (
	"math"
	"strings"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hassandahiru/soulc/internal/ast"
	"github.com/hassandahiru/soulc/internal/diag"
	"github.com/hassandahiru/soulc/internal/ir"
	"github.com/hassandahiru/soulc/internal/lower"
)

// Result is compile's outcome: exactly one of Module or Diagnostics is
// meaningful. A non-empty Diagnostics means the pipeline stopped before
// producing IR — Module is then nil, per §6.2.
type Result struct {
	Module      *ir.Module
	Diagnostics []diag.Diagnostic
}

// Compile runs the full copy -> type_discover -> (validate) -> type_resolve
// -> (validate) -> desugar -> (validate) -> lower composition over root
// (§6.2's `compile(module_root)`), with ErrorCollectorVisitor's default,
// unbounded MaxDepth at every validate step. Every log line glog emits
// while this call is in flight is tagged with a fresh UUIDv4 session id, so
// that concurrent callers can correlate log output with a specific Compile
// invocation without the core tracking any mutable global state (§5's "no
// global state" survives unchanged — the id is a local value, not a
// package variable).
func Compile(root *ast.ModuleNode) (*Result, error) {
	return CompileWithMaxErrorDepth(root, math.MaxInt)
}

// CompileWithMaxErrorDepth is Compile but lets the caller bound
// ErrorCollectorVisitor.MaxDepth at every validate step, threading
// soulc.yaml's error_collector.max_depth (or --max-error-depth) end to
// end instead of leaving it inert.
func CompileWithMaxErrorDepth(root *ast.ModuleNode, maxErrorDepth int) (*Result, error) {
	session := uuid.New()
	glog.V(1).Infof("[%s] pipeline: compile start, module %q", session, root.Name)

	copiedNode, err := ast.Copy(root)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: copy")
	}
	copied, ok := copiedNode.(*ast.ModuleNode)
	if !ok {
		return nil, errors.Errorf("pipeline: [INTERNAL] copy returned %T, expected *ast.ModuleNode", copiedNode)
	}

	glog.V(1).Infof("[%s] pipeline: type_discover", session)
	discovered, scope, err := ast.DiscoverTypes(copied)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: type_discover")
	}
	if diags, stop, err := validate(session, "type_discover", discovered, maxErrorDepth); err != nil {
		return nil, err
	} else if stop {
		return &Result{Diagnostics: diags}, nil
	}

	glog.V(1).Infof("[%s] pipeline: type_resolve", session)
	resolver := ast.NewTypeResolverVisitor(scope, discovered)
	resolvedRes, err := discovered.Accept(resolver)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: type_resolve")
	}
	resolved, ok := resolvedRes.(*ast.ModuleNode)
	if !ok {
		return nil, errors.Errorf("pipeline: [INTERNAL] type_resolve returned %T, expected *ast.ModuleNode", resolvedRes)
	}
	if diags, stop, err := validate(session, "type_resolve", resolved, maxErrorDepth); err != nil {
		return nil, err
	} else if stop {
		return &Result{Diagnostics: diags}, nil
	}

	glog.V(1).Infof("[%s] pipeline: desugar", session)
	desugaredNode, err := ast.Desugar(resolved)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: desugar")
	}
	desugared, ok := desugaredNode.(*ast.ModuleNode)
	if !ok {
		return nil, errors.Errorf("pipeline: [INTERNAL] desugar returned %T, expected *ast.ModuleNode", desugaredNode)
	}
	if diags, stop, err := validate(session, "desugar", desugared, maxErrorDepth); err != nil {
		return nil, err
	} else if stop {
		return &Result{Diagnostics: diags}, nil
	}

	glog.V(1).Infof("[%s] pipeline: lower", session)
	mod, err := lower.Lower(desugared, scope)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: lower")
	}

	glog.V(1).Infof("[%s] pipeline: compile done", session)
	return &Result{Module: mod}, nil
}

// validate runs ast.CollectErrorsWithMaxDepth over tree and, if it found
// anything, turns each CollectedError into a diag.Diagnostic and reports
// stop=true so Compile returns without proceeding to the next pass. pass
// names the just-completed stage, for the glog.V(2) per-finding line.
func validate(session uuid.UUID, pass string, tree ast.Node, maxDepth int) ([]diag.Diagnostic, bool, error) {
	collector, err := ast.CollectErrorsWithMaxDepth(tree, maxDepth)
	if err != nil {
		return nil, false, errors.Wrapf(err, "pipeline: validate after %s", pass)
	}
	if collector.IsValid() {
		return nil, false, nil
	}

	diags := make([]diag.Diagnostic, len(collector.Found))
	for i, found := range collector.Found {
		glog.V(2).Infof("[%s] pipeline: %s found error at depth %d: %s", session, pass, found.Depth, found.Node.Message)
		pos := found.Node.Pos()
		diags[i] = diag.New(codeForMessage(found.Node.Message), diag.Location{
			Row:    uint32(pos.Line),
			Column: uint32(pos.Column),
		}, "%s", found.Node.Message)
	}
	return diags, true, nil
}

// codeForMessage maps an ErrorNode's free-form message (§7's taxonomy: the
// message text itself is the only thing TypeDiscoverer/TypeResolver leave
// behind) back onto the closed Code enum. An unrecognized shape still gets
// a Diagnostic — just tagged with the generic unknown-identifier code
// rather than silently losing the message — since every ErrorCollectorVisitor
// finding must surface as a Diagnostic, per §6.2.
func codeForMessage(msg string) diag.Code {
	switch {
	case strings.HasPrefix(msg, "redefinition of type"):
		return diag.ErrRedefinitionOfType
	case strings.HasPrefix(msg, "cannot resolve type"):
		return diag.ErrUnknownTypeIdentifier
	case strings.HasPrefix(msg, "impossible cast"):
		return diag.ErrImpossibleCast
	default:
		return diag.ErrUnknownIdentifier
	}
}
