package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/synapse-lang/synapsec/internal/graph"
	"github.com/synapse-lang/synapsec/internal/serialize"
	"github.com/tidwall/sjson"
	"golang.org/x/text/cases"
)

var (
	configFile   string
	setOverrides []string
)

// Config is the CLI's own YAML config file: the effect allow-list a
// checker run is permitted to see, and a default graph path so repeated
// invocations during development don't have to repeat the file argument.
type Config struct {
	AllowedEffects []string `yaml:"allowed_effects"`
	DefaultGraph   string   `yaml:"default_graph"`
}

func loadConfig() (*Config, error) {
	cfg := &Config{}
	if configFile == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", configFile, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", configFile, err)
	}
	cfg.AllowedEffects = normalizeAllowedEffects(cfg.AllowedEffects)
	return cfg, nil
}

// normalizeAllowedEffects case-folds and dedupes the config file's effect
// allow-list before it reaches check.Check, which folds effect labels at
// the comparison site too (internal/check.recordEffects) — folding here as
// well just keeps a hand-edited YAML list's duplicate entries ("IO", "Io")
// collapsed before it's logged or printed.
func normalizeAllowedEffects(effects []string) []string {
	fold := cases.Fold()
	seen := make(map[string]bool, len(effects))
	out := make([]string, 0, len(effects))
	for _, e := range effects {
		f := fold.String(e)
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// graphPath resolves the positional file argument against the config's
// default_graph fallback.
func graphPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DefaultGraph != "" {
		return cfg.DefaultGraph, nil
	}
	return "", fmt.Errorf("no graph file given and no default_graph set in --config")
}

// loadGraph reads a JSON-encoded graph, applies any --set overrides (quick
// manual edits to a fixture without hand-editing the file), and decodes the
// patched document.
func loadGraph(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph %s: %w", path, err)
	}

	for _, set := range setOverrides {
		key, value, ok := splitSetFlag(set)
		if !ok {
			return nil, fmt.Errorf("malformed --set %q, want key=value", set)
		}
		patched, err := sjson.SetRawBytes(data, key, []byte(quoteIfNeeded(value)))
		if err != nil {
			return nil, fmt.Errorf("applying --set %q: %w", set, err)
		}
		data = patched
	}

	g, err := serialize.DecodeGraphJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decoding graph %s: %w", path, err)
	}
	return g, nil
}

func splitSetFlag(s string) (key, value string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// quoteIfNeeded lets --set values default to JSON numbers/bools/null and
// only quotes a value that isn't already valid JSON (a bare string like a
// node kind name).
func quoteIfNeeded(v string) string {
	switch v {
	case "true", "false", "null":
		return v
	}
	if v == "" {
		return `""`
	}
	if (v[0] >= '0' && v[0] <= '9') || v[0] == '-' {
		return v
	}
	if v[0] == '"' {
		return v
	}
	return fmt.Sprintf("%q", v)
}
