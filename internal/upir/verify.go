package upir

import "fmt"

// VerifyError reports a single structural invariant violation found by
// Verify. Unlike internal/validate's diagnostics, a VerifyError is fatal:
// a module that fails verification is not valid UPIR.
type VerifyError struct {
	Function  string
	Operation string
	Message   string
}

func (e *VerifyError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("upir: function %s: %s", e.Function, e.Message)
	}
	return fmt.Sprintf("upir: function %s, op %s: %s", e.Function, e.Operation, e.Message)
}

// Verify checks the structural invariants every lowering pass must satisfy:
// every operand is defined earlier in its block or bound by a dominating
// block argument, func.return carries as many operands as the enclosing
// function declares results (their types are not compared), and core.match
// carries one region per
// MatchArms entry whose entry-block arguments match the arm's binders.
func Verify(m *Module) error {
	for _, fn := range m.Functions {
		if err := verifyFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

func verifyFunction(fn *Function) error {
	for _, region := range fn.Regions {
		if err := verifyRegion(fn, region, nil); err != nil {
			return err
		}
	}
	return nil
}

// verifyRegion walks region in block order, accumulating defined values as
// it goes. inherited carries values already visible from an enclosing
// region (a match arm sees nothing from sibling arms, but every arm's
// region is checked independently so inherited is always nil today; the
// parameter exists so a future region kind with outer visibility needs no
// signature change).
func verifyRegion(fn *Function, r *Region, inherited map[ValueID]bool) error {
	for _, block := range r.Blocks {
		defined := make(map[ValueID]bool, len(inherited)+len(block.Args))
		for v := range inherited {
			defined[v] = true
		}
		for _, arg := range block.Args {
			defined[arg.Value] = true
		}
		for _, op := range block.Operations {
			for _, operand := range op.Operands {
				if !defined[operand] {
					return &VerifyError{Function: fn.Name, Operation: op.Name,
						Message: fmt.Sprintf("operand %%%d used before definition", operand)}
				}
			}
			if op.Name == OpReturn {
				if len(op.Operands) != len(fn.Signature.ResultTypes) {
					return &VerifyError{Function: fn.Name, Operation: op.Name,
						Message: fmt.Sprintf("returns %d values, function declares %d results",
							len(op.Operands), len(fn.Signature.ResultTypes))}
				}
			}
			if op.Name == OpMatch {
				if len(op.Regions) != len(op.MatchArms) {
					return &VerifyError{Function: fn.Name, Operation: op.Name,
						Message: fmt.Sprintf("has %d regions but %d match arm records",
							len(op.Regions), len(op.MatchArms))}
				}
				for i, arm := range op.MatchArms {
					armRegion := op.Regions[i]
					if len(armRegion.Blocks) == 0 {
						return &VerifyError{Function: fn.Name, Operation: op.Name,
							Message: fmt.Sprintf("arm %s has no entry block", arm.CtorName)}
					}
					entry := armRegion.Blocks[0]
					if len(entry.Args) != len(arm.BinderValues) {
						return &VerifyError{Function: fn.Name, Operation: op.Name,
							Message: fmt.Sprintf("arm %s binds %d values but entry block declares %d arguments",
								arm.CtorName, len(arm.BinderValues), len(entry.Args))}
					}
					if err := verifyRegion(fn, armRegion, nil); err != nil {
						return err
					}
				}
			}
			for _, result := range op.Results {
				defined[result] = true
			}
		}
	}
	return nil
}
