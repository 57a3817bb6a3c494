package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/synapse-lang/synapsec/internal/check"
	"github.com/synapse-lang/synapsec/internal/graph"
	"github.com/synapse-lang/synapsec/internal/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check [graph.json]",
	Short: "Run the structural linter and the type-and-effect checker",
	Long: `check reads a JSON-encoded graph, runs the Level-0 structural linter
(integrity, scope, application, assignment diagnostics), and then the
Hindley-Milner type-and-effect checker.

Examples:
  synapsec check graph.json
  synapsec check --config synapsec.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	path, err := graphPath(args)
	if err != nil {
		return err
	}
	g, err := loadGraph(path)
	if err != nil {
		return err
	}

	diags := validate.Validate(g)
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if len(diags) > 0 {
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

	printTypesAndEffects(types, effects)
	return nil
}

func printTypesAndEffects(types check.TypeMap, effects check.EffectMap) {
	ids := make([]int, 0, len(types))
	for id := range types {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	fmt.Printf("%d node(s) typed\n", len(ids))
	for _, id := range ids {
		nid := graph.NodeID(id)
		fmt.Printf("  #%d : %s", id, types[nid].String())
		if eff := effects[nid]; len(eff) > 0 {
			fmt.Printf("  effects=%v", eff)
		}
		fmt.Println()
	}
}
