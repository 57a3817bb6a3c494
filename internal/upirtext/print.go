package upirtext

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/synapse-lang/synapsec/internal/upir"
)

// Print renders m in the form spec.md §6.4 describes: an MLIR-inspired text
// with typed block arguments and dialect-qualified operation names. A
// core.match operation's arms print as a trailing "arm Ctor(%v: type, ...) {
// ... }" block per region, a SPEC_FULL extension of the grammar sketch (the
// sketch shows a plain operation list; it says nothing about how a nested
// region's arm should be recovered on parse, so the arm label has to be real
// syntax, not a stripped comment).
func Print(m *upir.Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module @%s {\n", m.Name)
	for _, fn := range m.Functions {
		printFunction(&b, m, fn)
	}
	b.WriteString("}\n")
	return b.String()
}

func printFunction(b *strings.Builder, m *upir.Module, fn *upir.Function) {
	b.WriteString("  func @")
	b.WriteString(fn.Name)
	b.WriteByte('(')
	var entryArgs []upir.BlockArgument
	if len(fn.Regions) > 0 && len(fn.Regions[0].Blocks) > 0 {
		entryArgs = fn.Regions[0].Blocks[0].Args
	}
	for i, a := range entryArgs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%%v%d: %s", a.Value, typeText(m, a.Type))
	}
	b.WriteString(") -> (")
	for i, rt := range fn.Signature.ResultTypes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(typeText(m, rt))
	}
	b.WriteString(") {\n")
	for _, region := range fn.Regions {
		for _, block := range region.Blocks {
			printBlock(b, m, block, 4)
		}
	}
	b.WriteString("  }\n")
}

func printBlock(b *strings.Builder, m *upir.Module, blk *upir.Block, indent int) {
	pad := strings.Repeat(" ", indent)
	b.WriteString(pad)
	fmt.Fprintf(b, "^bb%d(", blk.ID)
	for i, a := range blk.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%%v%d: %s", a.Value, typeText(m, a.Type))
	}
	b.WriteString("):\n")
	for _, op := range blk.Operations {
		printOperation(b, m, op, indent+2)
	}
}

func printOperation(b *strings.Builder, m *upir.Module, op *upir.Operation, indent int) {
	pad := strings.Repeat(" ", indent)
	b.WriteString(pad)
	if len(op.Results) > 0 {
		for i, r := range op.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%%v%d", r)
		}
		b.WriteString(": ")
		for i, t := range op.ResultTypes {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(typeText(m, t))
		}
		b.WriteString(" = ")
	}
	b.WriteString(op.Name)
	b.WriteByte('(')
	for i, operand := range op.Operands {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%%v%d", operand)
	}
	if len(op.Attributes) > 0 {
		b.WriteString("; ")
		keys := make([]string, 0, len(op.Attributes))
		for k := range op.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s=%s", k, attrText(k, op.Attributes[k]))
		}
	}
	b.WriteByte(')')

	if len(op.Regions) == 0 {
		b.WriteString("\n")
		return
	}
	b.WriteString(" {\n")
	for i, region := range op.Regions {
		arm := upir.MatchArmInfo{}
		if i < len(op.MatchArms) {
			arm = op.MatchArms[i]
		}
		fmt.Fprintf(b, "%s  arm %s(", pad, arm.CtorName)
		var entryArgs []upir.BlockArgument
		if len(region.Blocks) > 0 {
			entryArgs = region.Blocks[0].Args
		}
		for j, bv := range arm.BinderValues {
			if j > 0 {
				b.WriteString(", ")
			}
			var ty upir.TypeID
			if j < len(entryArgs) {
				ty = entryArgs[j].Type
			}
			fmt.Fprintf(b, "%%v%d: %s", bv, typeText(m, ty))
		}
		b.WriteString(") {\n")
		for _, blk := range region.Blocks {
			printBlock(b, m, blk, indent+4)
		}
		fmt.Fprintf(b, "%s  }\n", pad)
	}
	fmt.Fprintf(b, "%s}\n", pad)
}

func attrText(key string, a upir.Attribute) string {
	switch a.Kind {
	case upir.AttrString:
		if key == upir.AttrCallee {
			return "@" + a.Str
		}
		return a.Str
	case upir.AttrInt:
		return strconv.FormatInt(a.Int, 10)
	case upir.AttrBool:
		return strconv.FormatBool(a.Bool)
	case upir.AttrTypeRef:
		return fmt.Sprintf("!%d", a.TypeID)
	default:
		return "?"
	}
}

// typeText renders a TypeID's shape textually: "int", "bool", "unit",
// "(param) -> result", "ref<elem>", or "Name<arg, ...>" for an ADT. The
// module's TypeTable is the only place a printer can resolve a TypeID back to
// a shape, since ids are otherwise opaque.
func typeText(m *upir.Module, id upir.TypeID) string {
	desc, ok := m.TypeTable[id]
	if !ok {
		return fmt.Sprintf("!unknown%d", id)
	}
	switch desc.Kind {
	case upir.TyInt:
		return "int"
	case upir.TyBool:
		return "bool"
	case upir.TyUnit:
		return "unit"
	case upir.TyFn:
		return fmt.Sprintf("(%s) -> %s", typeText(m, desc.Param), typeText(m, desc.Result))
	case upir.TyRef:
		return fmt.Sprintf("ref<%s>", typeText(m, desc.Elem))
	case upir.TyADT:
		if len(desc.ADTArgs) == 0 {
			return desc.ADTName
		}
		parts := make([]string, len(desc.ADTArgs))
		for i, a := range desc.ADTArgs {
			parts[i] = typeText(m, a)
		}
		return fmt.Sprintf("%s<%s>", desc.ADTName, strings.Join(parts, ", "))
	default:
		return "!invalid"
	}
}
