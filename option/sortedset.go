package option

import "reflect"

// SortedSet is the declared type of a SET_SORTED option. The binder keeps it
// in ascending natural order (numeric for numbers, lexicographic for strings)
// with duplicates collapsed.
type SortedSet[T any] []T

func (SortedSet[T]) sortedSet() {}

type sortedSetMarker interface{ sortedSet() }

// IsSortedSet reports whether t is an instantiation of SortedSet.
func IsSortedSet(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Slice {
		return false
	}
	_, ok := reflect.Zero(t).Interface().(sortedSetMarker)
	return ok
}
