package convert

import (
	"math/big"
	"reflect"
)

var bigIntType = reflect.TypeOf((*big.Int)(nil))

// Defaults is the type default table: the zero value a value slot starts with
// before any token is bound.
type Defaults struct {
	values map[reflect.Type]reflect.Value
}

// NewDefaults returns the table of built-in primitive zero values.
func NewDefaults() *Defaults {
	d := &Defaults{values: make(map[reflect.Type]reflect.Value)}
	for _, v := range []any{
		false,
		int8(0), int16(0), int32(0), int(0), int64(0),
		uint8(0), uint16(0), uint32(0), uint(0), uint64(0),
		float32(0), float64(0),
		"",
	} {
		rv := reflect.ValueOf(v)
		d.values[rv.Type()] = rv
	}
	return d
}

// Zero returns the value an unbound slot of type t holds: the primitive zero
// for primitives (including named types over them) and nil for pointers,
// slices, maps and everything else.
func (d *Defaults) Zero(t reflect.Type) reflect.Value {
	if v, ok := d.values[t]; ok {
		return v
	}
	return reflect.Zero(t)
}

// Boxed returns a pointer to the primitive zero of t's element when t is a
// pointer to a primitive, and ok=false otherwise.
func (d *Defaults) Boxed(t reflect.Type) (reflect.Value, bool) {
	if t.Kind() != reflect.Ptr || !isPrimitive(t.Elem()) {
		return reflect.Value{}, false
	}
	p := reflect.New(t.Elem())
	p.Elem().Set(d.Zero(t.Elem()))
	return p, true
}

func isPrimitive(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}
