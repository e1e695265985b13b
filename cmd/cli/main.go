// compiledb - Compilation Database Generator
//
// compiledb turns the dry-run trace of a make build into a Clang-style
// compile_commands.json for IDEs, indexers, and static analysis tools.
package main

import (
	"os"

	"github.com/a5ehren/compiledb/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
