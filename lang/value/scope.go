package value

import "golang.org/x/exp/slices"

// Binding holds one variable slot: its current value and whether it may be
// reassigned (`var`) or not (`let`).
type Binding struct {
	Value   Value
	Mutable bool
}

// Scope is a lexical binding environment. Scopes chain to a Parent for
// ordinary lookup. A namespace scope additionally re-exports its own
// bindings into its ancestors under the qualified `N:` spelling the moment
// each member is defined, so that `Core:print` resolves from anywhere Core's
// enclosing scope is visible. Mirroring is one-way and happens at definition
// time only: both spellings share the same *Binding cell, so mutations to a
// shared container stay in sync while primitive reassignment would diverge
// (which cannot happen in practice, as namespaces reject `var` members).
type Scope struct {
	Parent *Scope
	vars   map[string]*Binding

	// Namespace, if non-empty, is this scope's namespace name; defining a
	// binding here also defines "Namespace:name" on Parent, and so on up the
	// chain while the ancestors are themselves namespace scopes.
	Namespace string
}

// NewScope creates a child scope of parent. parent may be nil for the root
// scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, vars: make(map[string]*Binding)}
}

// NewNamespaceScope creates a child scope that mirrors its definitions into
// parent under the "name:" prefix.
func NewNamespaceScope(parent *Scope, name string) *Scope {
	return &Scope{Parent: parent, vars: make(map[string]*Binding), Namespace: name}
}

// Name identifies the scope in error messages.
func (s *Scope) Name() string {
	if s.Namespace != "" {
		return s.Namespace
	}
	if s.Parent == nil {
		return "<root>"
	}
	return "<anonymous>"
}

// Define introduces a new binding in this scope, mirroring it into ancestor
// scopes under its qualified name when this scope (and its ancestors) are
// namespace scopes. Redefining a name already bound in this scope fails with
// VariableAlreadyExists.
func (s *Scope) Define(name string, v Value, mutable bool) error {
	if _, exists := s.vars[name]; exists {
		return NewRuntimeError(CategoryVariableAlreadyExists, "variable %q already exists in scope %s", name, s.Name())
	}
	b := &Binding{Value: v, Mutable: mutable}
	s.vars[name] = b

	qual := name
	for sc := s; sc.Namespace != "" && sc.Parent != nil; sc = sc.Parent {
		qual = sc.Namespace + ":" + qual
		sc.Parent.vars[qual] = b
	}
	return nil
}

// Lookup searches this scope and its ancestors for name, returning the
// binding and whether it was found.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if b, ok := sc.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Assign reassigns an existing mutable binding's value. It fails with
// NoSuchVariable if the binding does not exist anywhere in the chain, and
// with AssignmentToImmutable if the nearest binding is a `let`.
func (s *Scope) Assign(name string, v Value) error {
	b, ok := s.Lookup(name)
	if !ok {
		return NewRuntimeError(CategoryNoSuchVariable, "no such variable %q in scope %s", name, s.Name())
	}
	if !b.Mutable {
		return NewRuntimeError(CategoryAssignmentToImmutable, "cannot assign to immutable variable %q", name)
	}
	b.Value = v
	return nil
}

// Names returns every name directly bound in this scope (not ancestors),
// sorted for deterministic iteration.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.vars))
	for k := range s.vars {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// All returns a flattened view of every binding reachable from s, with
// bindings in inner scopes shadowing ancestors of the same name. It backs
// the host's scope-introspection entry point.
func (s *Scope) All() map[string]Value {
	out := make(map[string]Value)
	var walk func(sc *Scope)
	walk = func(sc *Scope) {
		if sc == nil {
			return
		}
		walk(sc.Parent) // ancestors first so descendants shadow them
		for k, b := range sc.vars {
			out[k] = b.Value
		}
	}
	walk(s)
	return out
}
