package model

import (
	"reflect"

	"github.com/ggoodman/cmdbind/option"
)

// Model is a compiled contract bound to one prototype value.
type Model struct {
	contract  reflect.Type
	prototype reflect.Value
	compiled  *compiled
	captured  map[*option.Spec]reflect.Value
}

// compiled is the per-type part of a Model and is shared through the cache.
// Nothing in it is mutated after compilation.
type compiled struct {
	specs  []*option.Spec
	byName map[string]*option.Spec
}

// Contract returns the contract struct type.
func (m *Model) Contract() reflect.Type { return m.contract }

// Specs returns the option specifications in declaration order. The specs are
// shared with other models of the same contract and must not be modified.
func (m *Model) Specs() []*option.Spec {
	out := make([]*option.Spec, len(m.compiled.specs))
	copy(out, m.compiled.specs)
	return out
}

// Lookup resolves an option by any of its names.
func (m *Model) Lookup(name string) (*option.Spec, bool) {
	s, ok := m.compiled.byName[name]
	return s, ok
}

// Prototype returns a copy of the prototype struct value. Untagged fields of
// the synthesized instance start from it.
func (m *Model) Prototype() reflect.Value {
	cp := reflect.New(m.contract).Elem()
	cp.Set(m.prototype)
	return cp
}

// Captured returns the container a composite value field held in the
// prototype. ok is false for accessor options.
func (m *Model) Captured(spec *option.Spec) (reflect.Value, bool) {
	v, ok := m.captured[spec]
	return v, ok
}
