package convert

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ggoodman/cmdbind/option"
)

var (
	errMissingValue = errors.New("missing value")
	errNotBoolean   = errors.New("expected true or false")
	errNotBigInt    = errors.New("not a decimal integer")
	errNotKeyValue  = errors.New("expected KEY=VALUE")
)

// Func converts one raw token to a value of the registered type.
type Func func(raw string) (reflect.Value, error)

// Registry maps Go types to string converters. A Registry is immutable once
// built and safe for concurrent use.
type Registry struct {
	custom   map[reflect.Type]Func
	defaults *Defaults
}

// Option configures a Registry built by New.
type Option func(*Registry)

// With registers fn as the converter for T, taking precedence over any
// built-in converter for the same type.
func With[T any](fn func(raw string) (T, error)) Option {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return func(r *Registry) {
		r.custom[t] = func(raw string) (reflect.Value, error) {
			v, err := fn(raw)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(&v).Elem(), nil
		}
	}
}

// WithDefaults replaces the type default table.
func WithDefaults(d *Defaults) Option {
	return func(r *Registry) {
		if d != nil {
			r.defaults = d
		}
	}
}

// New returns a registry holding the built-in converters plus opts.
func New(opts ...Option) *Registry {
	r := &Registry{
		custom:   make(map[reflect.Type]Func),
		defaults: NewDefaults(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var builtin = New()

// Default returns the shared registry of built-in converters.
func Default() *Registry { return builtin }

// Defaults returns the registry's type default table.
func (r *Registry) Defaults() *Defaults { return r.defaults }

// Supports reports whether raw tokens can be converted to t.
func (r *Registry) Supports(t reflect.Type) bool {
	_, _, ok := r.Classify(t)
	return ok
}

// Convert converts raw to a value of type t.
func (r *Registry) Convert(raw string, t reflect.Type) (reflect.Value, error) {
	if fn, ok := r.custom[t]; ok {
		return fn(raw)
	}
	if t == bigIntType {
		n, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return reflect.Value{}, errNotBigInt
		}
		return reflect.ValueOf(n), nil
	}
	if t.Kind() == reflect.Ptr {
		v, err := r.Convert(raw, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(v)
		return p, nil
	}

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		switch {
		case strings.EqualFold(raw, "true"):
			v.SetBool(true)
		case strings.EqualFold(raw, "false"):
			v.SetBool(false)
		default:
			return reflect.Value{}, errNotBoolean
		}
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetInt(n)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetFloat(f)
	case reflect.String:
		v.SetString(raw)
	default:
		return reflect.Value{}, fmt.Errorf("no converter for %s", t)
	}
	return v, nil
}

// Occurrence is one converted option occurrence.
type Occurrence struct {
	// Value is the scalar value, or the element for LIST and SET_* options,
	// or the entry value for MAP options.
	Value reflect.Value
	// Key is the entry key for MAP options.
	Key reflect.Value
}

// ConvertOccurrence converts one occurrence of spec. hasValue is false when
// the token stream carried the option name alone; boolean options and
// boolean elements then read as true.
func (r *Registry) ConvertOccurrence(spec *option.Spec, raw string, hasValue bool) (Occurrence, error) {
	switch spec.Kind {
	case option.KindMap:
		if !hasValue {
			return Occurrence{}, conversionError(spec, raw, spec.Kind, spec.Type, errMissingValue)
		}
		rawKey, rawVal, ok := splitEntry(raw)
		if !ok {
			return Occurrence{}, conversionError(spec, raw, spec.Kind, spec.Type, errNotKeyValue)
		}
		k, err := r.Convert(rawKey, spec.ElementTypes[0])
		if err != nil {
			return Occurrence{}, conversionError(spec, rawKey, spec.Elements[0], spec.ElementTypes[0], err)
		}
		v, err := r.Convert(rawVal, spec.ElementTypes[1])
		if err != nil {
			return Occurrence{}, conversionError(spec, rawVal, spec.Elements[1], spec.ElementTypes[1], err)
		}
		return Occurrence{Key: k, Value: v}, nil
	case option.KindList, option.KindSet, option.KindSortedSet:
		v, err := r.convertOne(spec, raw, hasValue, spec.Elements[0], spec.ElementTypes[0])
		return Occurrence{Value: v}, err
	default:
		v, err := r.convertOne(spec, raw, hasValue, spec.Kind, spec.Type)
		return Occurrence{Value: v}, err
	}
}

func (r *Registry) convertOne(spec *option.Spec, raw string, hasValue bool, kind option.Kind, t reflect.Type) (reflect.Value, error) {
	if !hasValue {
		if kind != option.KindBoolean {
			return reflect.Value{}, conversionError(spec, raw, kind, t, errMissingValue)
		}
		raw = "true"
	}
	v, err := r.Convert(raw, t)
	if err != nil {
		return reflect.Value{}, conversionError(spec, raw, kind, t, err)
	}
	return v, nil
}

func conversionError(spec *option.Spec, raw string, kind option.Kind, t reflect.Type, err error) error {
	return &option.Error{
		Code:   option.CodeConversion,
		Member: spec.Member.Name,
		Option: spec.Name(),
		Token:  raw,
		Target: kind.String() + " (" + t.String() + ")",
		Err:    err,
	}
}

// splitEntry splits raw on the first '=' not preceded by a backslash. Escaped
// separators in the key are unescaped; the value is returned verbatim.
func splitEntry(raw string) (key, value string, ok bool) {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case '=':
			return strings.ReplaceAll(raw[:i], `\=`, "="), raw[i+1:], true
		}
	}
	return "", "", false
}
