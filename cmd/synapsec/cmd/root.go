package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "synapsec",
	Short: "Synapse graph linter, checker, and lowerer",
	Long: `synapsec operates on a content-addressed abstract semantic graph (ASG)
for the Synapse language's middle end:

  - check  runs the structural linter and the type-and-effect checker
  - lower  lowers a checked graph to UPIR and prints it in text form
  - print  reads a graph or a UPIR module and prints it without checking

The graph front end (parser, CLI source loading) is out of scope here; every
subcommand reads its graph from a JSON file already in internal/serialize's
wire format.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (effect allow-list, default graph path)")
	rootCmd.PersistentFlags().StringArrayVar(&setOverrides, "set", nil, "override a graph JSON field, e.g. --set nodes.0.payload.value=42")
}
