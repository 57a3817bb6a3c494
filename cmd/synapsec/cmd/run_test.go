package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/synapse-lang/synapsec/internal/graph"
	"github.com/synapse-lang/synapsec/internal/serialize"
)

func writeGraphFixture(t *testing.T) string {
	t.Helper()
	g := graph.New()
	root := g.Insert(graph.LitIntPayload{Value: 7})
	if err := g.SetRoot(root); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	data, err := serialize.EncodeGraphJSON(g)
	if err != nil {
		t.Fatalf("EncodeGraphJSON: %v", err)
	}
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCheckAcceptsAWellFormedGraph(t *testing.T) {
	path := writeGraphFixture(t)
	configFile = ""
	setOverrides = nil
	if err := runCheck(nil, []string{path}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
}

func TestRunLowerProducesUpirText(t *testing.T) {
	path := writeGraphFixture(t)
	configFile = ""
	setOverrides = nil
	lowerOutputFile = filepath.Join(t.TempDir(), "out.upir")
	if err := runLower(nil, []string{path}); err != nil {
		t.Fatalf("runLower: %v", err)
	}
	data, err := os.ReadFile(lowerOutputFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("lower wrote an empty .upir file")
	}
}

func TestGraphPathRequiresFileOrDefault(t *testing.T) {
	configFile = ""
	if _, err := graphPath(nil); err == nil {
		t.Error("graphPath: want error with no args and no --config default")
	}
}
