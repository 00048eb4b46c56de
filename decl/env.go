package decl

import (
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// References to values
type Ref struct {
	Value Value
}

// Env holds the bindings for identifiers in one scope.  The outer link is a
// plain pointer to the enclosing scope; several children may share one outer
// scope and a child never owns it.
type Env struct {
	store map[string]*Ref
	outer *Env
}

// key returns the NFC form of name, the same form SymValue stores.
func key(name string) string {
	return norm.NFC.String(name)
}

// NewEnv creates a new environment nested within an outer one.
// If outer is nil then returns a fresh top-level environment.
func NewEnv(outer *Env) *Env {
	return &Env{store: make(map[string]*Ref), outer: outer}
}

// Outer returns the enclosing scope or nil for a root environment.
func (e *Env) Outer() *Env {
	return e.outer
}

// GetRef retrieves the binding cell for a name.  It checks the current
// environment first, then recursively checks outer environments.
func (e *Env) GetRef(name string) *Ref {
	ref, ok := e.store[key(name)]
	if (!ok || ref == nil) && e.outer != nil {
		ref = e.outer.GetRef(name)
	}
	return ref
}

// Lookup returns the value bound to name anywhere on the chain.
func (e *Env) Lookup(name string) (out Value, found bool) {
	ref := e.GetRef(name)
	if ref == nil {
		return None(), false
	}
	return ref.Value, true
}

// Get returns the value bound to name, or None when it is not bound anywhere.
func (e *Env) Get(name string) Value {
	out, _ := e.Lookup(name)
	return out
}

// Has reports whether name is bound anywhere on the chain.
func (e *Env) Has(name string) bool {
	return e.GetRef(name) != nil
}

// HasLocal reports whether name is bound in this scope (ignoring outer ones).
func (e *Env) HasLocal(name string) bool {
	ref, ok := e.store[key(name)]
	return ok && ref != nil
}

// Set binds name in the current scope, shadowing any outer binding.
func (e *Env) Set(name string, value Value) {
	e.store[key(name)] = &Ref{Value: value.Clone()}
}

// Assign rewrites the innermost existing binding of name.  Returns false (and
// changes nothing) if name is not bound anywhere on the chain.
func (e *Env) Assign(name string, value Value) bool {
	ref := e.GetRef(name)
	if ref == nil {
		return false
	}
	ref.Value = value.Clone()
	return true
}

// Set multiple key/values at once.
func (e *Env) SetMany(kvpairs map[string]Value) {
	for k, v := range kvpairs {
		e.Set(k, v)
	}
}

// Push creates a child scope of this environment.
func (e *Env) Push() *Env {
	return NewEnv(e)
}

// String representation for debugging
func (e *Env) String() string {
	return fmt.Sprintf("Env{store: %v, outer: %v}", e.Keys(), e.outer != nil)
}

// Keys returns all keys in this environment (not including outer environments)
func (e *Env) Keys() []string {
	keys := make([]string, 0, len(e.store))
	for k := range e.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns all key-value pairs in this environment (not including outer environments)
func (e *Env) All() map[string]Value {
	result := make(map[string]Value)
	for k, ref := range e.store {
		if ref != nil {
			result[k] = ref.Value
		}
	}
	return result
}
