package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/synapse-lang/synapsec/internal/graph"
	"github.com/synapse-lang/synapsec/internal/upirtext"
	"github.com/tidwall/gjson"
)

var printQuery string

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Print a graph or a UPIR module without running any pass",
	Long: `print reads either a JSON-encoded graph or a .upir text file and prints
it in human-readable form, performing no validation, type checking, or
lowering. It is the quickest way to eyeball a fixture.

--query runs a gjson path against the raw JSON instead of decoding and
printing the whole graph, useful to check one node's payload without
reading the full dump.

Examples:
  synapsec print graph.json
  synapsec print module.upir
  synapsec print graph.json --query "nodes.0.payload"`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().StringVar(&printQuery, "query", "", "gjson path to extract from the raw graph JSON instead of printing the whole graph")
}

func runPrint(_ *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if strings.HasSuffix(path, ".upir") {
		m, err := upirtext.Parse(string(data))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		fmt.Print(upirtext.Print(m))
		return nil
	}

	if printQuery != "" {
		result := gjson.GetBytes(data, printQuery)
		if !result.Exists() {
			return fmt.Errorf("query %q matched nothing in %s", printQuery, path)
		}
		fmt.Println(result.String())
		return nil
	}

	g, err := loadGraph(path)
	if err != nil {
		return err
	}
	printGraph(g)
	return nil
}

func printGraph(g *graph.Graph) {
	ids := g.NodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fmt.Printf("root: #%d\n", g.Root())
	for _, id := range ids {
		n, ok := g.Get(id)
		if !ok {
			continue
		}
		marker := " "
		if id == g.Root() {
			marker = "*"
		}
		fmt.Printf("%s #%-4d %s\n", marker, id, n.Kind())
	}
}
