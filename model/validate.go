package model

import (
	"errors"
	"reflect"

	"github.com/ggoodman/cmdbind/option"
)

var errAccessorSignature = errors.New("accessor must take no arguments and return exactly one value")

// validateAccessor accepts any func type without parameters and with a single
// result. The result type is checked later like any other declared type.
func validateAccessor(t reflect.Type, member string) error {
	if t.NumIn() == 0 && t.NumOut() == 1 && !t.IsVariadic() {
		return nil
	}
	return &option.Error{
		Code:   option.CodeInvalidAnnotationPlacement,
		Member: member,
		Err:    errAccessorSignature,
	}
}

// validateField rejects value fields that can never act as a writable slot:
// a scalar field is a constant of the prototype. Composite fields pass here;
// their slots stay read-only and the binder rejects the first write.
func validateField(spec *option.Spec) error {
	if spec.Member.Accessor || spec.Kind.IsComposite() {
		return nil
	}
	return &option.Error{
		Code:   option.CodeInvalidAnnotationPlacement,
		Member: spec.Member.Name,
		Option: spec.Name(),
	}
}
