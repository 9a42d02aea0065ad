// Package rawcall defines an Analyzer that reports direct invocations of a
// runtime function's Go implementation.
//
// Translated code must call functions through (*Engine).Call, so that
// the call stack is maintained, the stack limit is enforced and __call
// metamethods are honoured. Invoking the Callable field of a
// *value.Function skips all of that.
package rawcall

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/ast/inspector"
)

const valuePackageSuffix = "internal/engine/value"

// runtimePackageSuffixes are the packages that implement the call protocol,
// and are allowed to invoke functions directly.
var runtimePackageSuffixes = []string{
	"internal/engine",
	valuePackageSuffix,
}

var Analyzer = &analysis.Analyzer{
	Name:     "rawcall",
	Doc:      "report direct calls of value.Function.Callable outside of the runtime",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if isRuntimePackage(pass.Pkg.Path()) {
		return nil, nil
	}

	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	inspect.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		sel, ok := astutil.Unparen(call.Fun).(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "Callable" {
			return
		}
		if strings.HasSuffix(pass.Fset.File(call.Pos()).Name(), "_test.go") {
			return
		}
		selection, ok := pass.TypesInfo.Selections[sel]
		if !ok || selection.Kind() != types.FieldVal {
			return
		}
		if !isFunction(selection.Recv()) {
			return
		}
		pass.Reportf(call.Lparen, "direct call of Callable bypasses the call protocol, use (*Engine).Call")
	})
	return nil, nil
}

func isRuntimePackage(path string) bool {
	for _, suffix := range runtimePackageSuffixes {
		if path == suffix || strings.HasSuffix(path, "/"+suffix) {
			return true
		}
	}
	return false
}

// isFunction reports whether typ is value.Function or a pointer to it.
func isFunction(typ types.Type) bool {
	if ptr, ok := typ.(*types.Pointer); ok {
		typ = ptr.Elem()
	}
	named, ok := typ.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	if obj.Name() != "Function" || obj.Pkg() == nil {
		return false
	}
	path := obj.Pkg().Path()
	return path == valuePackageSuffix || strings.HasSuffix(path, "/"+valuePackageSuffix)
}
