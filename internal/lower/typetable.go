package lower

import (
	"fmt"

	"github.com/synapse-lang/synapsec/internal/checktypes"
	"github.com/synapse-lang/synapsec/internal/upir"
)

// typeTable interns checktypes.Type values into upir.TypeID, deduplicating
// structurally identical shapes. checktypes.Type.String() is already a
// stable, structural textual form (used elsewhere for error messages); it
// doubles here as the dedup key rather than writing a second equality walk.
type typeTable struct {
	module *upir.Module
	byKey  map[string]upir.TypeID
	next   upir.TypeID
}

func newTypeTable(m *upir.Module) *typeTable {
	return &typeTable{module: m, byKey: make(map[string]upir.TypeID), next: 1}
}

func (tt *typeTable) intern(t *checktypes.Type) (upir.TypeID, error) {
	if t == nil {
		return 0, fmt.Errorf("lower: cannot intern a nil type")
	}
	key := t.String()
	if id, ok := tt.byKey[key]; ok {
		return id, nil
	}

	var desc upir.TypeDesc
	switch t.Tag {
	case checktypes.TInt:
		desc = upir.TypeDesc{Kind: upir.TyInt}
	case checktypes.TBool:
		desc = upir.TypeDesc{Kind: upir.TyBool}
	case checktypes.TUnit:
		desc = upir.TypeDesc{Kind: upir.TyUnit}
	case checktypes.TFn:
		paramID, err := tt.intern(t.Param)
		if err != nil {
			return 0, err
		}
		resultID, err := tt.intern(t.Result)
		if err != nil {
			return 0, err
		}
		desc = upir.TypeDesc{Kind: upir.TyFn, Param: paramID, Result: resultID}
	case checktypes.TRef:
		elemID, err := tt.intern(t.Elem)
		if err != nil {
			return 0, err
		}
		desc = upir.TypeDesc{Kind: upir.TyRef, Elem: elemID}
	case checktypes.TADT:
		args := make([]upir.TypeID, len(t.ADTArgs))
		for i, a := range t.ADTArgs {
			id, err := tt.intern(a)
			if err != nil {
				return 0, err
			}
			args[i] = id
		}
		desc = upir.TypeDesc{Kind: upir.TyADT, ADTName: t.ADTName, ADTArgs: args}
	case checktypes.TVar, checktypes.TForAll:
		return 0, fmt.Errorf("lower: cannot intern unresolved polymorphic type %s (lowering requires a monomorphic instantiation at every use site)", t)
	default:
		return 0, fmt.Errorf("lower: unknown type tag for %s", t)
	}

	id := tt.next
	tt.next++
	tt.byKey[key] = id
	tt.module.TypeTable[id] = desc
	return id, nil
}
