package binding

import (
	"reflect"

	"github.com/ggoodman/cmdbind/convert"
	"github.com/ggoodman/cmdbind/option"
)

// slot is the value cell backing one option.
type slot struct {
	spec *option.Spec
	// value always has type spec.Type.
	value reflect.Value
	// readOnly is set for containers captured from the prototype.
	readOnly bool
}

func (s *slot) get() reflect.Value { return s.value }

// store applies one converted occurrence: scalars overwrite, lists append,
// sets insert and maps put.
func (s *slot) store(occ convert.Occurrence) {
	t := s.spec.Type
	switch s.spec.Kind {
	case option.KindList:
		s.value = reflect.Append(s.value, occ.Value)
	case option.KindSet:
		if s.value.IsNil() {
			s.value = reflect.MakeMap(t)
		}
		s.value.SetMapIndex(occ.Value, reflect.Zero(t.Elem()))
	case option.KindSortedSet:
		s.insertSorted(occ.Value)
	case option.KindMap:
		if s.value.IsNil() {
			s.value = reflect.MakeMap(t)
		}
		s.value.SetMapIndex(occ.Key, occ.Value)
	default:
		s.value = occ.Value
	}
}

func (s *slot) insertSorted(v reflect.Value) {
	n := s.value.Len()
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c := convert.Compare(s.value.Index(mid), v)
		if c == 0 {
			return
		}
		if c < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	grown := reflect.MakeSlice(s.spec.Type, n+1, n+1)
	reflect.Copy(grown, s.value.Slice(0, lo))
	grown.Index(lo).Set(v)
	reflect.Copy(grown.Slice(lo+1, n+1), s.value.Slice(lo, n))
	s.value = grown
}
