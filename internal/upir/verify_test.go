package upir

import "testing"

// buildAddFn builds a function @add(%v1: int, %v2: int) -> (int) computing
// core.add then func.return.
func buildAddFn() *Function {
	return &Function{
		Name:      "add",
		Signature: FunctionSignature{ArgTypes: []TypeID{1, 1}, ResultTypes: []TypeID{1}},
		Regions: []*Region{{
			Blocks: []*Block{{
				ID: 1,
				Args: []BlockArgument{
					{Value: 1, Type: 1},
					{Value: 2, Type: 1},
				},
				Operations: []*Operation{
					{Name: OpAdd, Operands: []ValueID{1, 2}, Results: []ValueID{3}, ResultTypes: []TypeID{1}},
					{Name: OpReturn, Operands: []ValueID{3}},
				},
			}},
		}},
	}
}

func TestVerifyAcceptsWellFormedFunction(t *testing.T) {
	m := NewModule("main")
	m.Functions = append(m.Functions, buildAddFn())
	if err := Verify(m); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsUseBeforeDefinition(t *testing.T) {
	fn := buildAddFn()
	fn.Regions[0].Blocks[0].Operations[0].Operands = []ValueID{1, 99}
	m := NewModule("main")
	m.Functions = append(m.Functions, fn)

	err := Verify(m)
	var verr *VerifyError
	if err == nil {
		t.Fatal("Verify: want error, got nil")
	}
	if ve, ok := err.(*VerifyError); ok {
		verr = ve
	} else {
		t.Fatalf("Verify error = %v, want *VerifyError", err)
	}
	if verr.Function != "add" {
		t.Errorf("Function = %q, want add", verr.Function)
	}
}

func TestVerifyRejectsReturnArityMismatch(t *testing.T) {
	fn := buildAddFn()
	fn.Regions[0].Blocks[0].Operations[1].Operands = nil
	m := NewModule("main")
	m.Functions = append(m.Functions, fn)

	if err := Verify(m); err == nil {
		t.Fatal("Verify: want error for return arity mismatch, got nil")
	}
}

func TestVerifyChecksMatchArmRegionsRecursively(t *testing.T) {
	fn := &Function{
		Name:      "scrutinize",
		Signature: FunctionSignature{ResultTypes: []TypeID{1}},
		Regions: []*Region{{
			Blocks: []*Block{{
				ID: 1,
				Operations: []*Operation{
					{Name: OpConstant, Results: []ValueID{10}, ResultTypes: []TypeID{1},
						Attributes: map[string]Attribute{AttrValue: IntAttr(0)}},
					{
						Name:      OpMatch,
						Operands:  []ValueID{10},
						Results:   []ValueID{11},
						MatchArms: []MatchArmInfo{{CtorName: "Some", BinderValues: []ValueID{20}}},
						Regions: []*Region{{
							Blocks: []*Block{{
								ID:   2,
								Args: []BlockArgument{{Value: 20, Type: 1}},
								Operations: []*Operation{
									{Name: OpReturn, Operands: []ValueID{99}},
								},
							}},
						}},
					},
				},
			}},
		}},
	}
	m := NewModule("main")
	m.Functions = append(m.Functions, fn)

	if err := Verify(m); err == nil {
		t.Fatal("Verify: want error for undefined operand inside match arm, got nil")
	}
}

func TestVerifyRejectsMatchArmArgMismatch(t *testing.T) {
	fn := &Function{
		Name:      "scrutinize",
		Signature: FunctionSignature{ResultTypes: []TypeID{1}},
		Regions: []*Region{{
			Blocks: []*Block{{
				ID: 1,
				Operations: []*Operation{
					{Name: OpConstant, Results: []ValueID{10}, ResultTypes: []TypeID{1},
						Attributes: map[string]Attribute{AttrValue: IntAttr(0)}},
					{
						Name:      OpMatch,
						Operands:  []ValueID{10},
						Results:   []ValueID{11},
						MatchArms: []MatchArmInfo{{CtorName: "Some", BinderValues: []ValueID{20}}},
						Regions: []*Region{{
							Blocks: []*Block{{ID: 2}},
						}},
					},
				},
			}},
		}},
	}
	m := NewModule("main")
	m.Functions = append(m.Functions, fn)

	if err := Verify(m); err == nil {
		t.Fatal("Verify: want error for arg count mismatch, got nil")
	}
}
