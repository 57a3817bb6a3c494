package graph

import "testing"

func TestInsertAllocatesMonotonicIDs(t *testing.T) {
	g := New()
	first := g.Insert(LitIntPayload{Value: 1})
	second := g.Insert(LitIntPayload{Value: 2})
	if first == 0 {
		t.Fatalf("first id must not be zero")
	}
	if second <= first {
		t.Fatalf("second id %d must be greater than first id %d", second, first)
	}
}

func TestInsertWithIDAdvancesCounter(t *testing.T) {
	g := New()
	g.InsertWithID(10, LitIntPayload{Value: 1})
	next := g.Insert(LitIntPayload{Value: 2})
	if next != 11 {
		t.Errorf("next id after InsertWithID(10, ...) = %d, want 11", next)
	}
}

func TestSetRootRejectsMissingNode(t *testing.T) {
	g := New()
	if err := g.SetRoot(999); err == nil {
		t.Error("SetRoot with an absent id should fail")
	}
}

func TestRemoveClearsRoot(t *testing.T) {
	g := New()
	id := g.Insert(LitIntPayload{Value: 1})
	if err := g.SetRoot(id); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	g.Remove(id)
	if g.Root() != 0 {
		t.Errorf("Root() = %d after removing the root node, want 0", g.Root())
	}
}

func TestNodeIDsSortedAscending(t *testing.T) {
	g := New()
	g.InsertWithID(5, LitIntPayload{Value: 1})
	g.InsertWithID(1, LitIntPayload{Value: 2})
	g.InsertWithID(3, LitIntPayload{Value: 3})

	ids := g.NodeIDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("NodeIDs() not strictly ascending: %v", ids)
		}
	}
}

func TestWithTraceRecordsInsertAndDelete(t *testing.T) {
	g := New(WithTrace(4))
	id := g.Insert(LitIntPayload{Value: 1})
	g.Remove(id)

	events := g.TraceEvents()
	if len(events) != 2 {
		t.Fatalf("len(TraceEvents()) = %d, want 2", len(events))
	}
	if events[0].Kind != TraceInsert || events[0].ID != id {
		t.Errorf("events[0] = %+v, want insert of %d", events[0], id)
	}
	if events[1].Kind != TraceDelete || events[1].ID != id {
		t.Errorf("events[1] = %+v, want delete of %d", events[1], id)
	}
}

func TestTraceEventsRingBufferWraps(t *testing.T) {
	g := New(WithTrace(2))
	a := g.Insert(LitIntPayload{Value: 1})
	b := g.Insert(LitIntPayload{Value: 2})
	c := g.Insert(LitIntPayload{Value: 3})

	events := g.TraceEvents()
	if len(events) != 2 {
		t.Fatalf("len(TraceEvents()) = %d, want 2", len(events))
	}
	if events[0].ID != b || events[1].ID != c {
		t.Errorf("events = %+v, want inserts of %d then %d", events, b, c)
	}
	_ = a
}

func TestGetVariableTypeMismatch(t *testing.T) {
	g := New()
	id := g.Insert(LitIntPayload{Value: 1})
	if _, err := g.GetVariable(id); err == nil {
		t.Error("GetVariable on a LitInt node should fail")
	}
}
