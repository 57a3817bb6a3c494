package cmd

import (
	"reflect"
	"testing"
)

func TestNormalizeAllowedEffectsFoldsAndDedupes(t *testing.T) {
	got := normalizeAllowedEffects([]string{"IO", "Io", "io", "Net"})
	want := []string{"io", "net"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeAllowedEffects = %v, want %v", got, want)
	}
}

func TestSplitSetFlag(t *testing.T) {
	key, value, ok := splitSetFlag("nodes.0.payload.value=42")
	if !ok {
		t.Fatal("splitSetFlag: want ok=true")
	}
	if key != "nodes.0.payload.value" || value != "42" {
		t.Errorf("key=%q value=%q, want nodes.0.payload.value / 42", key, value)
	}

	if _, _, ok := splitSetFlag("no-equals-sign"); ok {
		t.Error("splitSetFlag: want ok=false for a flag with no '='")
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	cases := map[string]string{
		"42":    "42",
		"-3":    "-3",
		"true":  "true",
		"false": "false",
		"null":  "null",
		"Some":  `"Some"`,
		"":      `""`,
	}
	for in, want := range cases {
		if got := quoteIfNeeded(in); got != want {
			t.Errorf("quoteIfNeeded(%q) = %q, want %q", in, got, want)
		}
	}
}
