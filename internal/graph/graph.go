package graph

import "sort"

// Graph is a content-addressed DAG of program nodes with stable identifiers.
// The zero value is not usable; construct one with New.
type Graph struct {
	store   Store
	nextID  NodeID
	root    NodeID
	tracing *traceStore
}

// Option configures a Graph at construction time, following the functional
// options idiom the interpreter uses for its own construction (see
// internal/interp/options.go upstream).
type Option func(*Graph)

// WithTrace enables the in-memory instrumentation ring buffer described in
// SPEC_FULL.md §4.1.1. capacity <= 0 selects a default capacity.
func WithTrace(capacity int) Option {
	return func(g *Graph) {
		ts := newTraceStore(capacity)
		g.store = ts
		g.tracing = ts
	}
}

// New returns an empty graph with its id counter at 1 and no root set.
func New(opts ...Option) *Graph {
	g := &Graph{store: newMemStore(), nextID: 1}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AllocateID returns the next unique id and advances the counter. It never
// returns 0 and never reuses an id, even across Remove.
func (g *Graph) AllocateID() NodeID {
	id := g.nextID
	g.nextID++
	return id
}

// Insert allocates a fresh id for payload, stores it, and returns the id.
func (g *Graph) Insert(payload Payload) NodeID {
	id := g.AllocateID()
	g.store.insert(&Node{ID: id, Payload: payload})
	return id
}

// InsertWithID stores payload under an explicit id, advancing the id counter
// past it if necessary. It exists for deserialization, where node ids are
// dictated by the wire format rather than freshly allocated.
func (g *Graph) InsertWithID(id NodeID, payload Payload) {
	g.store.insert(&Node{ID: id, Payload: payload})
	if id >= g.nextID {
		g.nextID = id + 1
	}
}

// Get returns the node with the given id, or (nil, false) if absent.
func (g *Graph) Get(id NodeID) (*Node, bool) {
	return g.store.get(id)
}

// MustGet is a convenience wrapper returning NodeNotFoundError instead of a
// boolean, used by passes that need Go's error-return idiom.
func (g *Graph) MustGet(id NodeID) (*Node, error) {
	n, ok := g.store.get(id)
	if !ok {
		return nil, &NodeNotFoundError{ID: id}
	}
	return n, nil
}

// SetRoot designates id as the graph's root. It fails with NodeNotFoundError
// if id is absent.
func (g *Graph) SetRoot(id NodeID) error {
	if _, ok := g.store.get(id); !ok {
		return &NodeNotFoundError{ID: id}
	}
	g.root = id
	if g.tracing != nil {
		g.tracing.record(TraceEvent{Kind: TraceSetRoot, ID: id})
	}
	return nil
}

// Root returns the current root id, or 0 if unset.
func (g *Graph) Root() NodeID { return g.root }

// Remove deletes the node with the given id. If it was the root, the root is
// cleared. Remove does not scan the graph for dangling references left
// behind — that is the validator's job.
func (g *Graph) Remove(id NodeID) {
	if g.root == id {
		g.root = 0
	}
	g.store.delete(id)
}

// Len returns the number of nodes currently stored.
func (g *Graph) Len() int { return g.store.len() }

// NodeIDs returns every node id present, sorted ascending. Canonical hashing
// (internal/hashing) relies on this ordering for determinism; other callers
// should treat the underlying map as unordered and not rely on insertion
// order being preserved.
func (g *Graph) NodeIDs() []NodeID {
	ids := g.store.nodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TraceEvents returns the instrumentation ring buffer's contents, or nil if
// the graph was not constructed with WithTrace.
func (g *Graph) TraceEvents() []TraceEvent {
	if g.tracing == nil {
		return nil
	}
	return g.tracing.Events()
}

// typed accessors, grounded on asg_core::AsgGraph's get_lambda/get_variable/
// get_application helpers.

// GetVariable returns the VariablePayload for id, or an error if id is
// absent or not a Variable node.
func (g *Graph) GetVariable(id NodeID) (*VariablePayload, error) {
	n, err := g.MustGet(id)
	if err != nil {
		return nil, err
	}
	v, ok := n.Payload.(VariablePayload)
	if !ok {
		return nil, &NodeTypeMismatchError{ID: id, Expected: KindVariable, Found: n.Kind()}
	}
	return &v, nil
}

// GetLambda returns the LambdaPayload for id, or an error if id is absent or
// not a Lambda node.
func (g *Graph) GetLambda(id NodeID) (*LambdaPayload, error) {
	n, err := g.MustGet(id)
	if err != nil {
		return nil, err
	}
	l, ok := n.Payload.(LambdaPayload)
	if !ok {
		return nil, &NodeTypeMismatchError{ID: id, Expected: KindLambda, Found: n.Kind()}
	}
	return &l, nil
}

// GetApplication returns the ApplicationPayload for id, or an error if id is
// absent or not an Application node.
func (g *Graph) GetApplication(id NodeID) (*ApplicationPayload, error) {
	n, err := g.MustGet(id)
	if err != nil {
		return nil, err
	}
	a, ok := n.Payload.(ApplicationPayload)
	if !ok {
		return nil, &NodeTypeMismatchError{ID: id, Expected: KindApplication, Found: n.Kind()}
	}
	return &a, nil
}
