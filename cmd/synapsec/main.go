// Command synapsec is a diagnostic CLI over the Synapse content-addressed
// graph pipeline: read a JSON-encoded graph, run the structural linter, the
// type-and-effect checker, and the lowering pass, and print the results.
package main

import (
	"os"

	"github.com/synapse-lang/synapsec/cmd/synapsec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
