package option

// Kind is the semantic type tag of an option or of one of its elements.
type Kind int

const (
	KindInvalid Kind = iota
	KindBoolean
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindBigInt
	KindString
	// KindValue marks a type handled by a caller-registered converter.
	KindValue
	KindList
	KindSortedSet
	KindSet
	KindMap
)

var kindNames = [...]string{
	KindInvalid:   "INVALID",
	KindBoolean:   "BOOLEAN",
	KindByte:      "BYTE",
	KindShort:     "SHORT",
	KindInt:       "INT",
	KindLong:      "LONG",
	KindFloat:     "FLOAT",
	KindDouble:    "DOUBLE",
	KindBigInt:    "BIGINT",
	KindString:    "STRING",
	KindValue:     "VALUE",
	KindList:      "LIST",
	KindSortedSet: "SET_SORTED",
	KindSet:       "SET_UNORDERED",
	KindMap:       "MAP",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// IsComposite reports whether values of this kind hold several converted
// elements.
func (k Kind) IsComposite() bool {
	switch k {
	case KindList, KindSortedSet, KindSet, KindMap:
		return true
	}
	return false
}

// ElementCount is the number of element kinds a spec of this kind carries.
func (k Kind) ElementCount() int {
	switch k {
	case KindList, KindSortedSet, KindSet:
		return 1
	case KindMap:
		return 2
	}
	return 0
}
