package value

import (
	"math"
	"strings"
)

// Arr is a mutable, reference-semantics array. Sharing an *Arr between two
// bindings means mutating it through one is visible through the other,
// matching AiScript's shared-container semantics for compound values.
type Arr struct {
	Elems []Value
}

// NewArr builds an *Arr owning elems directly (no copy).
func NewArr(elems ...Value) *Arr { return &Arr{Elems: elems} }

func (*Arr) Type() string { return "arr" }

func (a *Arr) Repr() string {
	var b strings.Builder
	display(&b, a, map[Value]bool{})
	return b.String()
}

func (a *Arr) Len() int { return len(a.Elems) }

// checkIndex validates a raw `arr[i]` index: it must be an integer num in
// [0, len). Indexing never wraps around from the end; negative-from-end
// semantics exist only on the `at` primitive method.
func (a *Arr) checkIndex(idx Value) (int, error) {
	n, ok := idx.(Num)
	if !ok {
		return 0, NewRuntimeError(CategoryTypeMismatch, "arr index must be num, got %s", idx.Type())
	}
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, NewRuntimeError(CategoryUnexpectedNonInteger, "arr index must be an integer, got %s", n.Repr())
	}
	i := int(f)
	if i < 0 || i >= len(a.Elems) {
		return 0, NewRuntimeError(CategoryIndexOutOfRange, "index out of range. index: %d max: %d", i, len(a.Elems)-1)
	}
	return i, nil
}

func (a *Arr) Index(idx Value) (Value, error) {
	i, err := a.checkIndex(idx)
	if err != nil {
		return nil, err
	}
	return a.Elems[i], nil
}

// SetIndex writes an existing element. Assignment through an index never
// grows the array, so i == len is out of range just like a read.
func (a *Arr) SetIndex(idx, v Value) error {
	i, err := a.checkIndex(idx)
	if err != nil {
		return err
	}
	a.Elems[i] = v
	return nil
}

func (a *Arr) Iterate() Iterator {
	return &arrIter{elems: append([]Value{}, a.Elems...)}
}

// arrIter walks a snapshot of the element slice taken when iteration began;
// mutations to the array during iteration are not observed.
type arrIter struct {
	elems []Value
	i     int
}

func (it *arrIter) Next() (Value, bool) {
	if it.i >= len(it.elems) {
		return nil, false
	}
	v := it.elems[it.i]
	it.i++
	return v, true
}
