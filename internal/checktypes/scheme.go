package checktypes

// Scheme is a let-bound type, universally quantified over Vars. A Scheme
// with an empty Vars is monomorphic.
type Scheme struct {
	Vars []Var
	Body *Type
}

// Monomorphic wraps t as a non-generalized scheme.
func Monomorphic(t *Type) Scheme {
	return Scheme{Body: t}
}

// FreshCounter hands out monotonically increasing unification variables,
// mirroring asg_core's id allocation style: a single counter owned by one
// inference invocation, never reused. Like NodeID 0, Var 0 is never handed
// out.
type FreshCounter struct {
	next Var
}

// Fresh returns a new, never-before-seen Var and advances the counter.
func (c *FreshCounter) Fresh() Var {
	c.next++
	return c.next
}

// FreshType is a convenience wrapper returning a VarType built from Fresh.
func (c *FreshCounter) FreshType() *Type {
	return VarType(c.Fresh())
}

// Instantiate replaces every scheme-bound variable with a fresh one,
// producing a monotype ready for unification.
func Instantiate(s Scheme, fresh *FreshCounter) *Type {
	if len(s.Vars) == 0 {
		return s.Body
	}
	subst := make(Subst, len(s.Vars))
	for _, v := range s.Vars {
		subst[v] = fresh.FreshType()
	}
	return subst.Apply(s.Body)
}

// Generalize closes over every free variable of t that is not already free
// in the environment env (a set of Vars still bound by an enclosing scope),
// producing a Scheme suitable for let-polymorphism.
func Generalize(t *Type, env map[Var]struct{}, subst Subst) Scheme {
	free := make(map[Var]struct{})
	collectFreeVars(subst.Apply(t), free)
	var vars []Var
	for v := range free {
		if _, bound := env[v]; !bound {
			vars = append(vars, v)
		}
	}
	return Scheme{Vars: vars, Body: t}
}

// FreeVars returns every unification variable appearing free in t.
func FreeVars(t *Type) map[Var]struct{} {
	free := make(map[Var]struct{})
	collectFreeVars(t, free)
	return free
}

func collectFreeVars(t *Type, into map[Var]struct{}) {
	if t == nil {
		return
	}
	switch t.Tag {
	case TVar:
		into[t.Var] = struct{}{}
	case TFn:
		collectFreeVars(t.Param, into)
		collectFreeVars(t.Result, into)
	case TRef:
		collectFreeVars(t.Elem, into)
	case TForAll:
		bound := make(map[Var]struct{}, len(t.Params))
		for _, p := range t.Params {
			bound[p] = struct{}{}
		}
		inner := make(map[Var]struct{})
		collectFreeVars(t.Body, inner)
		for v := range inner {
			if _, isBound := bound[v]; !isBound {
				into[v] = struct{}{}
			}
		}
	case TADT:
		for _, a := range t.ADTArgs {
			collectFreeVars(a, into)
		}
	}
}
