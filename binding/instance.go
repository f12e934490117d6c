package binding

import (
	"errors"
	"log/slog"
	"reflect"

	"github.com/ggoodman/cmdbind/convert"
	"github.com/ggoodman/cmdbind/internal/logctx"
	"github.com/ggoodman/cmdbind/model"
	"github.com/ggoodman/cmdbind/option"
)

// Instance is a synthesized command instance and the value slots behind it.
type Instance struct {
	model         *model.Model
	registry      *convert.Registry
	logger        *slog.Logger
	boxedDefaults bool

	root   reflect.Value // *T
	slots  []*slot
	bySpec map[*option.Spec]*slot
}

// Option configures Instantiate.
type Option func(*Instance)

// WithRegistry sets the converter registry used by Bind. It should be the
// registry the model was built with. The default is convert.Default().
func WithRegistry(r *convert.Registry) Option {
	return func(i *Instance) {
		if r != nil {
			i.registry = r
		}
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(i *Instance) { i.logger = logctx.Wrap(l) }
}

// WithBoxedDefaults seeds boxed (pointer-to-primitive) slots with a pointer
// to the primitive zero instead of nil.
func WithBoxedDefaults() Option {
	return func(i *Instance) { i.boxedDefaults = true }
}

// Instantiate allocates one slot per option of m and synthesizes the command
// instance reading from them.
func Instantiate(m *model.Model, opts ...Option) (*Instance, error) {
	if m == nil {
		return nil, errors.New("binding: nil model")
	}
	i := &Instance{
		model:    m,
		registry: convert.Default(),
		logger:   logctx.Wrap(slog.Default()),
		bySpec:   make(map[*option.Spec]*slot),
	}
	for _, opt := range opts {
		opt(i)
	}

	i.root = reflect.New(m.Contract())
	i.root.Elem().Set(m.Prototype())

	for _, spec := range m.Specs() {
		s := &slot{spec: spec}
		if captured, ok := m.Captured(spec); ok {
			s.value = captured
			s.readOnly = true
		} else {
			s.value = i.defaultFor(spec)
			field := i.root.Elem().FieldByIndex(spec.Member.Index)
			field.Set(accessor(field.Type(), s))
		}
		i.slots = append(i.slots, s)
		i.bySpec[spec] = s
	}
	return i, nil
}

func accessor(fnType reflect.Type, s *slot) reflect.Value {
	return reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		return []reflect.Value{s.get()}
	})
}

func (i *Instance) defaultFor(spec *option.Spec) reflect.Value {
	d := i.registry.Defaults()
	if spec.Boxed && i.boxedDefaults {
		if v, ok := d.Boxed(spec.Type); ok {
			return v
		}
	}
	return d.Zero(spec.Type)
}

// Command returns the synthesized instance, a pointer to the contract struct.
func (i *Instance) Command() any { return i.root.Interface() }

// Model returns the model the instance was synthesized from.
func (i *Instance) Model() *model.Model { return i.model }

// As returns the instance as a *T. ok is false when T is not the contract.
func As[T any](i *Instance) (*T, bool) {
	t, ok := i.root.Interface().(*T)
	return t, ok
}

// Lookup returns the current value of the option declaring name.
func (i *Instance) Lookup(name string) (any, bool) {
	spec, ok := i.model.Lookup(name)
	if !ok {
		return nil, false
	}
	return i.bySpec[spec].get().Interface(), true
}

// Reset returns every writable slot to its type default. Captured containers
// are left untouched.
func (i *Instance) Reset() {
	for _, s := range i.slots {
		if !s.readOnly {
			s.value = i.defaultFor(s.spec)
		}
	}
}
