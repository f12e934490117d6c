package option

import (
	"reflect"
	"strings"
)

// Member identifies the contract struct field an option binds to.
type Member struct {
	// Name is the dotted Go field path, e.g. "Common.Verbose".
	Name string
	// Index is the reflect field index path from the contract root.
	Index []int
	// Accessor is true for func-typed fields (accessor methods) and false for
	// value fields initialised from the prototype.
	Accessor bool
}

// Spec is the resolved metadata of one bindable option.
type Spec struct {
	// Names holds the distinct option names in declaration order.
	Names []string
	Kind  Kind
	// Boxed is set for pointer-to-primitive declarations such as *int32.
	Boxed bool
	// Elements holds one kind for LIST and SET_*, key and value for MAP.
	Elements []Kind
	// Type is the Go type stored in the value slot: the accessor's result
	// type or the field type.
	Type reflect.Type
	// ElementTypes are the Go types each raw element converts to. They differ
	// from the declared element types only for erased (any) declarations
	// resolved through a type override.
	ElementTypes []reflect.Type
	Member       Member
	Description  string
}

// Name returns the first declared name.
func (s *Spec) Name() string {
	if len(s.Names) == 0 {
		return ""
	}
	return s.Names[0]
}

// TakesValue reports whether an occurrence of the option consumes a value
// token. Boolean options are flags.
func (s *Spec) TakesValue() bool {
	return s.Kind != KindBoolean
}

// Captured reports whether the option is a value field whose slot is the
// prototype's container and therefore not writable.
func (s *Spec) Captured() bool {
	return !s.Member.Accessor
}

func (s *Spec) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(s.Names, ","))
	b.WriteString(" ")
	b.WriteString(s.Kind.String())
	if len(s.Elements) > 0 {
		b.WriteString("<")
		for i, k := range s.Elements {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(k.String())
		}
		b.WriteString(">")
	}
	return b.String()
}
