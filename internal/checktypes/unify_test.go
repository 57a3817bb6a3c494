package checktypes

import "testing"

func TestUnifyBaseTypes(t *testing.T) {
	subst := Subst{}
	if err := Unify(Int(), Int(), subst); err != nil {
		t.Errorf("Unify(Int, Int) failed: %v", err)
	}
	if err := Unify(Bool(), Int(), subst); err == nil {
		t.Error("Unify(Bool, Int) should fail")
	}
}

func TestUnifyBindsVariable(t *testing.T) {
	subst := Subst{}
	fresh := &FreshCounter{}
	v := fresh.FreshType()
	if err := Unify(v, Int(), subst); err != nil {
		t.Fatalf("Unify: %v", err)
	}
	if got := subst.Apply(v); !got.Equal(Int()) {
		t.Errorf("subst.Apply(v) = %s, want Int", got)
	}
}

func TestUnifyFunctionTypes(t *testing.T) {
	subst := Subst{}
	fresh := &FreshCounter{}
	a, b := fresh.FreshType(), fresh.FreshType()
	lhs := Fn(a, b)
	rhs := Fn(Int(), Bool())
	if err := Unify(lhs, rhs, subst); err != nil {
		t.Fatalf("Unify: %v", err)
	}
	if !subst.Apply(a).Equal(Int()) {
		t.Errorf("a = %s, want Int", subst.Apply(a))
	}
	if !subst.Apply(b).Equal(Bool()) {
		t.Errorf("b = %s, want Bool", subst.Apply(b))
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	subst := Subst{}
	fresh := &FreshCounter{}
	v := fresh.FreshType()
	selfRef := Fn(v, Int())
	if err := Unify(v, selfRef, subst); err == nil {
		t.Error("Unify should fail an occurs check when binding v to a type containing v")
	}
}

func TestUnifyADT(t *testing.T) {
	subst := Subst{}
	fresh := &FreshCounter{}
	v := fresh.FreshType()
	lhs := ADT("Option", []*Type{v})
	rhs := ADT("Option", []*Type{Int()})
	if err := Unify(lhs, rhs, subst); err != nil {
		t.Fatalf("Unify: %v", err)
	}
	if !subst.Apply(v).Equal(Int()) {
		t.Errorf("v = %s, want Int", subst.Apply(v))
	}
}

func TestUnifyADTArityMismatch(t *testing.T) {
	subst := Subst{}
	lhs := ADT("Pair", []*Type{Int(), Bool()})
	rhs := ADT("Pair", []*Type{Int()})
	if err := Unify(lhs, rhs, subst); err == nil {
		t.Error("Unify should fail on differing ADT arity")
	}
}

func TestInstantiateFreshensSchemeVars(t *testing.T) {
	fresh := &FreshCounter{}
	s := Scheme{Vars: []Var{0}, Body: Fn(VarType(0), VarType(0))}
	t1 := Instantiate(s, fresh)
	t2 := Instantiate(s, fresh)
	if t1.Equal(t2) {
		t.Error("two instantiations of the same scheme should use distinct fresh variables")
	}
}

func TestGeneralizeExcludesBoundEnvVars(t *testing.T) {
	subst := Subst{}
	bound := Var(1)
	env := map[Var]struct{}{bound: {}}
	ty := Fn(VarType(bound), VarType(2))
	scheme := Generalize(ty, env, subst)
	for _, v := range scheme.Vars {
		if v == bound {
			t.Errorf("Generalize closed over %d, which is free in the enclosing environment", bound)
		}
	}
	found := false
	for _, v := range scheme.Vars {
		if v == 2 {
			found = true
		}
	}
	if !found {
		t.Error("Generalize should close over variable 2, which is not bound in env")
	}
}
