package checktypes

// Unify mutates subst so that t1 and t2 denote the same type, per the
// Robinson unification rules in SPEC_FULL.md §4.5.1. It mirrors
// type_checker_l1::unification::unify, extended with Ref (already present
// upstream) and ADT (added at Level 2).
func Unify(t1, t2 *Type, subst Subst) error {
	t1 = subst.Apply(t1)
	t2 = subst.Apply(t2)

	switch {
	case t1.Tag == TInt && t2.Tag == TInt,
		t1.Tag == TBool && t2.Tag == TBool,
		t1.Tag == TUnit && t2.Tag == TUnit:
		return nil

	case t1.Tag == TRef && t2.Tag == TRef:
		return Unify(t1.Elem, t2.Elem, subst)

	case t1.Tag == TFn && t2.Tag == TFn:
		if err := Unify(t1.Param, t2.Param, subst); err != nil {
			return err
		}
		return Unify(t1.Result, t2.Result, subst)

	case t1.Tag == TADT && t2.Tag == TADT:
		if t1.ADTName != t2.ADTName || len(t1.ADTArgs) != len(t2.ADTArgs) {
			return &UnificationFailError{Left: t1, Right: t2}
		}
		for i := range t1.ADTArgs {
			if err := Unify(t1.ADTArgs[i], t2.ADTArgs[i], subst); err != nil {
				return err
			}
		}
		return nil

	case t1.Tag == TVar:
		return bindVar(t1.Var, t2, subst)

	case t2.Tag == TVar:
		return bindVar(t2.Var, t1, subst)

	default:
		return &UnificationFailError{Left: t1, Right: t2}
	}
}

func bindVar(v Var, t *Type, subst Subst) error {
	if t.Tag == TVar && t.Var == v {
		return nil
	}
	if occursCheck(v, t, subst) {
		return &OccursCheckError{Var: v, In: t}
	}
	subst[v] = t
	return nil
}

func occursCheck(v Var, t *Type, subst Subst) bool {
	switch t.Tag {
	case TVar:
		if t.Var == v {
			return true
		}
		if bound, ok := subst[t.Var]; ok {
			return occursCheck(v, bound, subst)
		}
		return false
	case TFn:
		return occursCheck(v, t.Param, subst) || occursCheck(v, t.Result, subst)
	case TRef:
		return occursCheck(v, t.Elem, subst)
	case TADT:
		for _, a := range t.ADTArgs {
			if occursCheck(v, a, subst) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
