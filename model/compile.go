package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ggoodman/cmdbind/convert"
	"github.com/ggoodman/cmdbind/option"
)

const (
	tagOption      = "option"
	tagType        = "type"
	tagDescription = "description"
)

var stringType = reflect.TypeOf("")

var errPointerKey = errors.New("map keys compare by identity; use the element type itself")

func compile(t reflect.Type, reg *convert.Registry) (*compiled, error) {
	c := &compiled{byName: make(map[string]*option.Spec)}
	if err := c.walk(t, nil, "", reg); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *compiled) walk(t reflect.Type, index []int, prefix string, reg *convert.Registry) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fieldIndex := append(append([]int(nil), index...), i)
		tag, tagged := f.Tag.Lookup(tagOption)

		if !tagged {
			if f.Anonymous && f.IsExported() && f.Type.Kind() == reflect.Struct {
				if err := c.walk(f.Type, fieldIndex, prefix+f.Name+".", reg); err != nil {
					return err
				}
			}
			continue
		}

		spec, err := compileMember(f, fieldIndex, prefix+f.Name, tag, reg)
		if err != nil {
			return err
		}
		if err := c.add(spec); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiled) add(spec *option.Spec) error {
	for _, name := range spec.Names {
		if prev, dup := c.byName[name]; dup {
			return &option.Error{
				Code:   option.CodeNamingConflict,
				Option: name,
				Other:  prev.Member.Name,
				Member: spec.Member.Name,
			}
		}
	}
	for _, name := range spec.Names {
		c.byName[name] = spec
	}
	c.specs = append(c.specs, spec)
	return nil
}

func compileMember(f reflect.StructField, index []int, member, tag string, reg *convert.Registry) (*option.Spec, error) {
	if !f.IsExported() {
		return nil, &option.Error{
			Code:   option.CodeInvalidAnnotationPlacement,
			Member: member,
			Err:    fmt.Errorf("%s is unexported", member),
		}
	}

	names, err := parseNames(tag, member)
	if err != nil {
		return nil, err
	}

	spec := &option.Spec{
		Names:       names,
		Member:      option.Member{Name: member, Index: index},
		Description: f.Tag.Get(tagDescription),
	}

	declared := f.Type
	if declared.Kind() == reflect.Func {
		if err := validateAccessor(f.Type, member); err != nil {
			return nil, err
		}
		spec.Member.Accessor = true
		declared = f.Type.Out(0)
	}
	spec.Type = declared

	if err := resolveTypes(spec, f.Tag.Get(tagType), reg); err != nil {
		return nil, err
	}
	if err := validateField(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func parseNames(tag, member string) ([]string, error) {
	var names []string
	seen := make(map[string]struct{})
	for _, n := range strings.Split(tag, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if strings.ContainsAny(n, " \t\n=") {
			return nil, &option.Error{Code: option.CodeInvalidOptionName, Option: n, Member: member}
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	if len(names) == 0 {
		return nil, &option.Error{Code: option.CodeInvalidOptionName, Member: member}
	}
	return names, nil
}

// resolveTypes fills the kind and element information of spec from its
// declared type, falling back to the type override tag for erased elements
// and to string when neither says more.
func resolveTypes(spec *option.Spec, override string, reg *convert.Registry) error {
	var overrides []reflect.Type
	if override != "" {
		for _, name := range strings.Split(override, ",") {
			name = strings.TrimSpace(name)
			ot, ok := convert.OverrideType(name)
			if !ok {
				return unsupported(spec, name, fmt.Errorf("unknown type override %q", name))
			}
			overrides = append(overrides, ot)
		}
	}

	t := spec.Type
	var declaredElems []reflect.Type
	switch {
	case option.IsSortedSet(t):
		spec.Kind = option.KindSortedSet
		declaredElems = []reflect.Type{t.Elem()}
	case t.Kind() == reflect.Slice:
		spec.Kind = option.KindList
		declaredElems = []reflect.Type{t.Elem()}
	case t.Kind() == reflect.Map && t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0:
		spec.Kind = option.KindSet
		declaredElems = []reflect.Type{t.Key()}
	case t.Kind() == reflect.Map:
		spec.Kind = option.KindMap
		declaredElems = []reflect.Type{t.Key(), t.Elem()}
	default:
		kind, boxed, ok := reg.Classify(t)
		if !ok {
			return unsupported(spec, t.String(), nil)
		}
		spec.Kind = kind
		spec.Boxed = boxed
		return nil
	}

	for i, decl := range declaredElems {
		et := decl
		if decl.Kind() == reflect.Interface {
			et = stringType
			if i < len(overrides) {
				et = overrides[i]
			}
			if !et.AssignableTo(decl) {
				return unsupported(spec, et.String(), fmt.Errorf("%s is not assignable to %s", et, decl))
			}
		}
		kind, boxed, ok := reg.Classify(et)
		if !ok {
			return unsupported(spec, et.String(), nil)
		}
		if (boxed || kind == option.KindBigInt) && i == 0 && (spec.Kind == option.KindSet || spec.Kind == option.KindMap) {
			return unsupported(spec, et.String(), errPointerKey)
		}
		spec.Elements = append(spec.Elements, kind)
		spec.ElementTypes = append(spec.ElementTypes, et)
	}
	return nil
}

func unsupported(spec *option.Spec, target string, err error) error {
	return &option.Error{
		Code:   option.CodeUnsupportedType,
		Member: spec.Member.Name,
		Option: spec.Name(),
		Target: target,
		Err:    err,
	}
}
