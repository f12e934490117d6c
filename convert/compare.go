package convert

import (
	"cmp"
	"fmt"
	"math/big"
	"reflect"
)

// Compare orders two converted values by the natural ordering of their type:
// numeric for numbers, lexicographic for strings, false before true. Values
// held in interfaces or behind pointers are compared by what they point to.
// Types without a natural order fall back to their formatted text.
func Compare(a, b reflect.Value) int {
	a, b = indirect(a), indirect(b)
	if a.Type() == bigIntType && b.Type() == bigIntType {
		return a.Interface().(*big.Int).Cmp(b.Interface().(*big.Int))
	}
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Bool:
			return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint, reflect.Uint64:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		}
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func indirect(v reflect.Value) reflect.Value {
	for {
		switch {
		case v.Kind() == reflect.Interface && !v.IsNil():
			v = v.Elem()
		case v.Kind() == reflect.Ptr && !v.IsNil() && v.Type() != bigIntType:
			v = v.Elem()
		default:
			return v
		}
	}
}
