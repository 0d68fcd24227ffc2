package decl

import (
	"fmt"
	"slices"
)

// References to values
type Ref[T any] struct {
	Value T
}

// Env[T] holds the values bound to names in one lexical frame, plus a link to
// the enclosing frame.  Closures keep a pointer to the frame they were created
// in so the frame lives as long as they do.
type Env[T any] struct {
	store map[string]*Ref[T]
	outer *Env[T]
}

// NewEnv[T] creates a new environment nested within an outer one.
// If outer is nil then returns a fresh top-level environment.
func NewEnv[T any](outer *Env[T]) *Env[T] {
	s := make(map[string]*Ref[T])
	return &Env[T]{store: s, outer: outer}
}

// Outer returns the enclosing environment or nil for the root.
func (e *Env[T]) Outer() *Env[T] {
	return e.outer
}

// GetRef finds the cell holding name, checking this frame first and then
// walking outwards.
func (e *Env[T]) GetRef(name string) *Ref[T] {
	for env := e; env != nil; env = env.outer {
		if ref, ok := env.store[name]; ok && ref != nil {
			return ref
		}
	}
	return nil
}

func (e *Env[T]) Get(name string) (out T, found bool) {
	ref := e.GetRef(name)
	if ref != nil {
		out = ref.Value
		found = true
	}
	return
}

// Define creates or overwrites name in this frame only.
func (e *Env[T]) Define(name string, value T) {
	e.store[name] = &Ref[T]{Value: value}
}

// Assign updates the nearest existing binding of name.  Returns false if no
// frame in the chain holds it; nothing is created in that case.
func (e *Env[T]) Assign(name string, value T) bool {
	ref := e.GetRef(name)
	if ref == nil {
		return false
	}
	ref.Value = value
	return true
}

// HasLocal reports whether name is bound in this frame (ignoring outer frames).
func (e *Env[T]) HasLocal(name string) bool {
	_, ok := e.store[name]
	return ok
}

// Push creates a child environment of this one.
func (e *Env[T]) Push() *Env[T] {
	return NewEnv(e)
}

// Extends our environment by creating a new environment and setting values in it
func (e *Env[T]) Extend(kvpairs map[string]T) *Env[T] {
	out := e.Push()
	for k, v := range kvpairs {
		out.Define(k, v)
	}
	return out
}

// Depth is the number of frames from here to the root, counting this one.
func (e *Env[T]) Depth() (n int) {
	for env := e; env != nil; env = env.outer {
		n++
	}
	return
}

// String representation for debugging
func (e *Env[T]) String() string {
	return fmt.Sprintf("Env{names: %v, outer: %v}", e.Keys(), e.outer != nil)
}

// Keys returns the sorted names in this environment (not including outer environments)
func (e *Env[T]) Keys() []string {
	keys := make([]string, 0, len(e.store))
	for k := range e.store {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// All returns all key-value pairs in this environment (not including outer environments)
func (e *Env[T]) All() map[string]T {
	result := make(map[string]T)
	for k, ref := range e.store {
		if ref != nil {
			result[k] = ref.Value
		}
	}
	return result
}
