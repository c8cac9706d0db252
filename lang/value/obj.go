package value

import (
	"strings"

	"github.com/dolthub/swiss"
)

// Obj is a mutable, reference-semantics, insertion-ordered string-keyed map.
// Lookups are served by a Swiss table (github.com/dolthub/swiss) while key order
// for iteration and Repr is tracked separately, since swiss.Map makes no
// ordering guarantee.
type Obj struct {
	table *swiss.Map[string, Value]
	order []string
}

// NewObj returns an empty Obj.
func NewObj() *Obj {
	return &Obj{table: swiss.NewMap[string, Value](8)}
}

func (*Obj) Type() string { return "obj" }

func (o *Obj) Repr() string {
	var b strings.Builder
	display(&b, o, map[Value]bool{})
	return b.String()
}

// Get returns the value stored at key, or (nil, false) if absent.
func (o *Obj) Get(key string) (Value, bool) {
	return o.table.Get(key)
}

// Set stores v at key, appending key to the insertion order the first time
// it is used.
func (o *Obj) Set(key string, v Value) {
	if _, existed := o.table.Get(key); !existed {
		o.order = append(o.order, key)
	}
	o.table.Put(key, v)
}

// Delete removes key, if present, also dropping it from the insertion order.
func (o *Obj) Delete(key string) {
	if _, ok := o.table.Get(key); !ok {
		return
	}
	o.table.Delete(key)
	for i, k := range o.order {
		if k == key {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Keys returns the object's keys in insertion order. The caller must not
// modify the returned slice.
func (o *Obj) Keys() []string { return o.order }

// Len reports the number of entries.
func (o *Obj) Len() int { return o.table.Count() }

func (o *Obj) Attr(name string) (Value, error) {
	if v, ok := o.table.Get(name); ok {
		return v, nil
	}
	return Null{}, nil
}

func (o *Obj) Index(idx Value) (Value, error) {
	k, ok := idx.(Str)
	if !ok {
		return nil, NewRuntimeError(CategoryTypeMismatch, "obj index must be str, got %s", idx.Type())
	}
	if v, found := o.table.Get(string(k)); found {
		return v, nil
	}
	return Null{}, nil
}

func (o *Obj) SetIndex(idx, v Value) error {
	k, ok := idx.(Str)
	if !ok {
		return NewRuntimeError(CategoryTypeMismatch, "obj index must be str, got %s", idx.Type())
	}
	o.Set(string(k), v)
	return nil
}

func (o *Obj) Iterate() Iterator {
	return &objIter{o: o}
}

type objIter struct {
	o *Obj
	i int
}

// Next yields [key, value] pairs as a 2-element *Arr, matching the pairs
// Obj:kvs returns (see lang/stdlib's Obj namespace).
func (it *objIter) Next() (Value, bool) {
	if it.i >= len(it.o.order) {
		return nil, false
	}
	k := it.o.order[it.i]
	it.i++
	v, _ := it.o.table.Get(k)
	return NewArr(Str(k), v), true
}
