package checktypes

// Subst is a substitution from unification variables to types, built up by
// Unify and applied to close over a result type once inference of an
// expression completes.
type Subst map[Var]*Type

// Apply rewrites every Var in t that resolves (directly or transitively)
// through s, leaving unresolved variables and non-variable structure
// otherwise untouched.
func (s Subst) Apply(t *Type) *Type {
	if t == nil {
		return nil
	}
	switch t.Tag {
	case TVar:
		if bound, ok := s[t.Var]; ok {
			return s.Apply(bound)
		}
		return t
	case TFn:
		return Fn(s.Apply(t.Param), s.Apply(t.Result))
	case TRef:
		return RefOf(s.Apply(t.Elem))
	case TForAll:
		// Bound parameters shadow any substitution entry for the same Var.
		inner := make(Subst, len(s))
		for v, b := range s {
			inner[v] = b
		}
		for _, p := range t.Params {
			delete(inner, p)
		}
		return ForAll(t.Params, inner.Apply(t.Body))
	case TADT:
		args := make([]*Type, len(t.ADTArgs))
		for i, a := range t.ADTArgs {
			args[i] = s.Apply(a)
		}
		return ADT(t.ADTName, args)
	default:
		return t
	}
}
