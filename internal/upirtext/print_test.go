package upirtext

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/synapse-lang/synapsec/internal/upir"
)

func buildAddOneModule() *upir.Module {
	m := upir.NewModule("main")
	m.TypeTable[1] = upir.TypeDesc{Kind: upir.TyInt}

	fn := &upir.Function{
		Name:      "main",
		Signature: upir.FunctionSignature{ArgTypes: []upir.TypeID{1}, ResultTypes: []upir.TypeID{1}},
	}
	block := &upir.Block{
		ID:   1,
		Args: []upir.BlockArgument{{Value: 1, Type: 1}},
		Operations: []*upir.Operation{
			{Name: upir.OpConstant, Results: []upir.ValueID{2}, ResultTypes: []upir.TypeID{1}, Attributes: map[string]upir.Attribute{upir.AttrValue: upir.IntAttr(1)}},
			{Name: upir.OpAdd, Operands: []upir.ValueID{1, 2}, Results: []upir.ValueID{3}, ResultTypes: []upir.TypeID{1}},
			{Name: upir.OpReturn, Operands: []upir.ValueID{3}},
		},
	}
	fn.Regions = []*upir.Region{{Blocks: []*upir.Block{block}}}
	m.Functions = []*upir.Function{fn}
	return m
}

func TestPrintRendersExpectedShape(t *testing.T) {
	out := Print(buildAddOneModule())
	for _, want := range []string{
		"module @main {",
		"func @main(%v1: int) -> (int) {",
		"^bb1(%v1: int):",
		"%v2: int = core.constant(; value=1)",
		"%v3: int = core.add(%v1, %v2)",
		"func.return(%v3)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Print output missing %q; got:\n%s", want, out)
		}
	}
}

func TestParseRoundTripsPrintOutput(t *testing.T) {
	original := buildAddOneModule()
	text := Print(original)

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Name != original.Name {
		t.Errorf("Name = %q, want %q", parsed.Name, original.Name)
	}
	if len(parsed.Functions) != 1 {
		t.Fatalf("len(Functions) = %d, want 1", len(parsed.Functions))
	}
	fn := parsed.Functions[0]
	if fn.Name != "main" {
		t.Errorf("Name = %q, want main", fn.Name)
	}
	if len(fn.Signature.ArgTypes) != 1 || typeText(parsed, fn.Signature.ArgTypes[0]) != "int" {
		t.Errorf("ArgTypes = %+v, want one int", fn.Signature.ArgTypes)
	}
	if len(fn.Signature.ResultTypes) != 1 || typeText(parsed, fn.Signature.ResultTypes[0]) != "int" {
		t.Errorf("ResultTypes = %+v, want one int", fn.Signature.ResultTypes)
	}
	ops := fn.Regions[0].Blocks[0].Operations
	if len(ops) != 3 {
		t.Fatalf("len(Operations) = %d, want 3", len(ops))
	}
	if ops[0].Name != upir.OpConstant || ops[1].Name != upir.OpAdd || ops[2].Name != upir.OpReturn {
		t.Errorf("op names = %v", []string{ops[0].Name, ops[1].Name, ops[2].Name})
	}
	if ops[0].Attributes[upir.AttrValue].Kind != upir.AttrInt || ops[0].Attributes[upir.AttrValue].Int != 1 {
		t.Errorf("constant attribute = %+v, want int 1", ops[0].Attributes[upir.AttrValue])
	}
	if ops[1].Operands[0] != fn.Regions[0].Blocks[0].Args[0].Value || ops[1].Operands[1] != ops[0].Results[0] {
		t.Errorf("operands = %v, want [%%v1, %%v2]", ops[1].Operands)
	}
}

func buildMatchModule() *upir.Module {
	m := upir.NewModule("main")
	m.TypeTable[1] = upir.TypeDesc{Kind: upir.TyInt}
	m.TypeTable[2] = upir.TypeDesc{Kind: upir.TyADT, ADTName: "Option"}
	m.DatatypeDecls = []upir.DatatypeDecl{{
		Name: "Option",
		Ctors: []upir.CtorSig{
			{Name: "Some", FieldTypes: []upir.TypeID{1}},
			{Name: "None"},
		},
	}}

	someArm := &upir.Region{Blocks: []*upir.Block{{
		ID:         2,
		Args:       []upir.BlockArgument{{Value: 10, Type: 1}},
		Operations: []*upir.Operation{{Name: upir.OpReturn, Operands: []upir.ValueID{10}}},
	}}}
	noneArm := &upir.Region{Blocks: []*upir.Block{{
		ID: 3,
		Operations: []*upir.Operation{
			{Name: upir.OpConstant, Results: []upir.ValueID{11}, ResultTypes: []upir.TypeID{1}, Attributes: map[string]upir.Attribute{upir.AttrValue: upir.IntAttr(0)}},
			{Name: upir.OpReturn, Operands: []upir.ValueID{11}},
		},
	}}}

	matchOp := &upir.Operation{
		Name:        upir.OpMatch,
		Operands:    []upir.ValueID{1},
		Results:     []upir.ValueID{20},
		ResultTypes: []upir.TypeID{1},
		Regions:     []*upir.Region{someArm, noneArm},
		MatchArms: []upir.MatchArmInfo{
			{CtorName: "Some", BinderValues: []upir.ValueID{10}},
			{CtorName: "None"},
		},
	}

	fn := &upir.Function{
		Name:      "main",
		Signature: upir.FunctionSignature{ArgTypes: []upir.TypeID{2}, ResultTypes: []upir.TypeID{1}},
		Regions: []*upir.Region{{Blocks: []*upir.Block{{
			ID:         1,
			Args:       []upir.BlockArgument{{Value: 1, Type: 2}},
			Operations: []*upir.Operation{matchOp, {Name: upir.OpReturn, Operands: []upir.ValueID{20}}},
		}}}},
	}
	m.Functions = []*upir.Function{fn}
	return m
}

func TestPrintMatchModuleSnapshot(t *testing.T) {
	snaps.MatchSnapshot(t, Print(buildMatchModule()))
}

func TestParseRoundTripsMatchArms(t *testing.T) {
	text := Print(buildMatchModule())
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, text)
	}
	ops := parsed.Functions[0].Regions[0].Blocks[0].Operations
	if len(ops) != 2 || ops[0].Name != upir.OpMatch {
		t.Fatalf("want [core.match, func.return], got %v", opKinds(ops))
	}
	matchOp := ops[0]
	if len(matchOp.Regions) != 2 || len(matchOp.MatchArms) != 2 {
		t.Fatalf("Regions/MatchArms = %d/%d, want 2/2", len(matchOp.Regions), len(matchOp.MatchArms))
	}
	if matchOp.MatchArms[0].CtorName != "Some" || matchOp.MatchArms[1].CtorName != "None" {
		t.Errorf("arm ctor names = %q, %q", matchOp.MatchArms[0].CtorName, matchOp.MatchArms[1].CtorName)
	}
	if len(matchOp.MatchArms[0].BinderValues) != 1 {
		t.Errorf("Some arm binders = %d, want 1", len(matchOp.MatchArms[0].BinderValues))
	}
	if len(matchOp.MatchArms[1].BinderValues) != 0 {
		t.Errorf("None arm binders = %d, want 0", len(matchOp.MatchArms[1].BinderValues))
	}
}

func opKinds(ops []*upir.Operation) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"module { }",
		"module @m { func @f() -> (int) { ^bb1(): %v1: int = core.constant(;value=1) } ",
		"module @m { func @f() -> (int) { ^bb1(): bogus",
	}
	for _, src := range cases {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q): want error, got nil", src)
		}
	}
}
