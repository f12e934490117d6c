package convert

import (
	"reflect"

	"github.com/ggoodman/cmdbind/option"
)

// Classify resolves the semantic kind of a scalar Go type. Pointers to
// primitives report boxed=true. Types with a registered converter classify as
// KindValue. Composite types are not classified here.
func (r *Registry) Classify(t reflect.Type) (kind option.Kind, boxed bool, ok bool) {
	if t == nil {
		return option.KindInvalid, false, false
	}
	if _, custom := r.custom[t]; custom {
		return option.KindValue, false, true
	}
	if t == bigIntType {
		return option.KindBigInt, false, true
	}
	if t.Kind() == reflect.Ptr {
		if _, custom := r.custom[t.Elem()]; custom {
			return option.KindInvalid, false, false
		}
		k := primitiveKind(t.Elem())
		return k, true, k != option.KindInvalid
	}
	k := primitiveKind(t)
	return k, false, k != option.KindInvalid
}

func primitiveKind(t reflect.Type) option.Kind {
	switch t.Kind() {
	case reflect.Bool:
		return option.KindBoolean
	case reflect.Int8, reflect.Uint8:
		return option.KindByte
	case reflect.Int16, reflect.Uint16:
		return option.KindShort
	case reflect.Int32, reflect.Int, reflect.Uint32, reflect.Uint:
		return option.KindInt
	case reflect.Int64, reflect.Uint64:
		return option.KindLong
	case reflect.Float32:
		return option.KindFloat
	case reflect.Float64:
		return option.KindDouble
	case reflect.String:
		return option.KindString
	}
	return option.KindInvalid
}

var overrideTypes = map[string]reflect.Type{
	"bool":    reflect.TypeOf(false),
	"boolean": reflect.TypeOf(false),
	"int8":    reflect.TypeOf(int8(0)),
	"byte":    reflect.TypeOf(int8(0)),
	"int16":   reflect.TypeOf(int16(0)),
	"short":   reflect.TypeOf(int16(0)),
	"int32":   reflect.TypeOf(int32(0)),
	"int":     reflect.TypeOf(int(0)),
	"int64":   reflect.TypeOf(int64(0)),
	"long":    reflect.TypeOf(int64(0)),
	"float32": reflect.TypeOf(float32(0)),
	"float":   reflect.TypeOf(float32(0)),
	"float64": reflect.TypeOf(float64(0)),
	"double":  reflect.TypeOf(float64(0)),
	"bigint":  bigIntType,
	"string":  reflect.TypeOf(""),
}

// OverrideType resolves a name from a `type:"..."` tag to the Go type raw
// elements convert to.
func OverrideType(name string) (reflect.Type, bool) {
	t, ok := overrideTypes[name]
	return t, ok
}
