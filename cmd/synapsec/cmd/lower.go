package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/synapse-lang/synapsec/internal/check"
	"github.com/synapse-lang/synapsec/internal/lower"
	"github.com/synapse-lang/synapsec/internal/upir"
	"github.com/synapse-lang/synapsec/internal/upirtext"
	"github.com/synapse-lang/synapsec/internal/validate"
)

var lowerOutputFile string

var lowerCmd = &cobra.Command{
	Use:   "lower [graph.json]",
	Short: "Check a graph and lower it to UPIR, printing the textual form",
	Long: `lower runs the structural linter and the type-and-effect checker, then
lowers the checked graph to UPIR and verifies the resulting module's
structural invariants before printing it in the diagnostic text form.

Examples:
  synapsec lower graph.json
  synapsec lower graph.json -o module.upir`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLower,
}

func init() {
	rootCmd.AddCommand(lowerCmd)
	lowerCmd.Flags().StringVarP(&lowerOutputFile, "output", "o", "", "write the UPIR text to this file instead of stdout")
}

func runLower(_ *cobra.Command, args []string) error {
	path, err := graphPath(args)
	if err != nil {
		return err
	}
	g, err := loadGraph(path)
	if err != nil {
		return err
	}

	if diags := validate.Validate(g); len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.String())
		}
		return fmt.Errorf("structural validation found %d diagnostic(s)", len(diags))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	types, effects, err := check.Check(g, cfg.AllowedEffects)
	if err != nil {
		return fmt.Errorf("type/effect check failed: %w", err)
	}

	m, err := lower.Lower(g, types, effects)
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}
	if err := upir.Verify(m); err != nil {
		return fmt.Errorf("lowered module failed verification: %w", err)
	}

	text := upirtext.Print(m)
	if lowerOutputFile == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(lowerOutputFile, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", lowerOutputFile, err)
	}
	fmt.Printf("Lowered %s -> %s\n", path, lowerOutputFile)
	return nil
}
