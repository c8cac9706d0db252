// Package value defines the runtime value representation for the
// interpreter: the Value interface and the concrete types that implement it
// (Null, Bool, Num, Str, *Arr, *Obj, *Fn, *Error), plus the small set of
// optional capability interfaces the evaluator (lang/interp) type-switches
// on to decide how a value participates in indexing, iteration, calling and
// attribute access.
package value

// Value is implemented by every runtime value. It deliberately carries very
// little behavior of its own: most operations are expressed as capability
// interfaces below, so that a concrete type need only implement the
// capabilities it actually supports.
type Value interface {
	// Type names the value's dynamic type, e.g. "num", "str", "arr".
	Type() string
	// Repr renders the value the way it would appear embedded in a template;
	// the debug-print statement uses Display, which differs only in quoting a
	// top-level string.
	Repr() string
}

// Indexable is implemented by values that support `target[index]` reads.
type Indexable interface {
	Value
	Index(idx Value) (Value, error)
}

// SetIndexable is implemented by values that additionally support
// `target[index] = value` writes.
type SetIndexable interface {
	Indexable
	SetIndex(idx, v Value) error
}

// HasAttrs is implemented by values whose properties are read with
// `target.name`, i.e. Obj and Error; the properties of num, str and arr are
// resolved by lang/primitive's dispatch tables instead.
type HasAttrs interface {
	Value
	Attr(name string) (Value, error)
}

// Iterable is implemented by values that `each` can walk.
type Iterable interface {
	Value
	Iterate() Iterator
}

// Iterator yields successive elements of an Iterable.
type Iterator interface {
	Next() (Value, bool)
}

// Truthy reports whether v is truthy: `null` and `false` are falsy, every
// other value (including 0, "", [] and {}) is truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal implements AiScript's `==`: by value for scalars, structural on
// contents for arrays and objects. Scripted functions compare by their body
// and captured scope identity; natives only equal themselves. Shared
// sub-structure may be cyclic, so comparison tracks the pairs it is already
// descending through and treats a revisited pair as equal (the back-edges
// match if everything else does).
func Equal(a, b Value) bool {
	return structEqual(a, b, nil)
}

type eqPair struct{ a, b Value }

func structEqual(a, b Value, inProgress map[eqPair]bool) bool {
	switch a := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case Num:
		bb, ok := b.(Num)
		return ok && a == bb
	case Str:
		bb, ok := b.(Str)
		return ok && a == bb
	case *Arr:
		bb, ok := b.(*Arr)
		if !ok {
			return false
		}
		if a == bb {
			return true
		}
		if len(a.Elems) != len(bb.Elems) {
			return false
		}
		pair := eqPair{a, bb}
		if inProgress[pair] {
			return true
		}
		if inProgress == nil {
			inProgress = make(map[eqPair]bool)
		}
		inProgress[pair] = true
		defer delete(inProgress, pair)
		for i := range a.Elems {
			if !structEqual(a.Elems[i], bb.Elems[i], inProgress) {
				return false
			}
		}
		return true
	case *Obj:
		bb, ok := b.(*Obj)
		if !ok {
			return false
		}
		if a == bb {
			return true
		}
		if a.Len() != bb.Len() {
			return false
		}
		pair := eqPair{a, bb}
		if inProgress[pair] {
			return true
		}
		if inProgress == nil {
			inProgress = make(map[eqPair]bool)
		}
		inProgress[pair] = true
		defer delete(inProgress, pair)
		for _, k := range a.Keys() {
			av, _ := a.Get(k)
			bv, found := bb.Get(k)
			if !found || !structEqual(av, bv, inProgress) {
				return false
			}
		}
		return true
	case *Fn:
		bb, ok := b.(*Fn)
		if !ok {
			return false
		}
		if a == bb {
			return true
		}
		if a.IsNative() || bb.IsNative() {
			return false
		}
		return a.Body == bb.Body && a.Closure == bb.Closure
	case *Error:
		bb, ok := b.(*Error)
		if !ok {
			return false
		}
		if a == bb {
			return true
		}
		if a.Name != bb.Name {
			return false
		}
		ai, bi := a.Info, bb.Info
		if ai == nil {
			ai = Null{}
		}
		if bi == nil {
			bi = Null{}
		}
		return structEqual(ai, bi, inProgress)
	default:
		return false
	}
}
