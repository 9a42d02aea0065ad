// Command rawcall reports direct calls of value.Function.Callable in
// translated programs.
package main

import (
	"github.com/tsatke/luart/internal/tools/analysis/rawcall"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(rawcall.Analyzer)
}
