// Package schema describes command models as JSON Schema documents, so tools
// can inspect which options a contract accepts without running it.
package schema

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"

	"github.com/invopop/jsonschema"

	"github.com/ggoodman/cmdbind/model"
	"github.com/ggoodman/cmdbind/option"
)

const bigIntPattern = `^[-+]?[0-9]+$`

// Describe returns an object schema with one property per option, keyed by
// the option's first name and kept in declaration order. Options bound to
// captured value fields are marked readOnly.
func Describe(m *model.Model) *jsonschema.Schema {
	root := &jsonschema.Schema{
		Version:              jsonschema.Version,
		Title:                m.Contract().Name(),
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
	for _, spec := range m.Specs() {
		root.Properties.Set(spec.Name(), describeSpec(spec))
	}
	return root
}

// JSON renders Describe(m) with two-space indentation.
func JSON(m *model.Model) ([]byte, error) {
	return json.MarshalIndent(Describe(m), "", "  ")
}

func describeSpec(spec *option.Spec) *jsonschema.Schema {
	var s *jsonschema.Schema
	switch spec.Kind {
	case option.KindList:
		s = &jsonschema.Schema{Type: "array", Items: describeScalar(spec.Elements[0], spec.ElementTypes[0])}
	case option.KindSet, option.KindSortedSet:
		s = &jsonschema.Schema{Type: "array", UniqueItems: true, Items: describeScalar(spec.Elements[0], spec.ElementTypes[0])}
	case option.KindMap:
		s = &jsonschema.Schema{Type: "object", AdditionalProperties: describeScalar(spec.Elements[1], spec.ElementTypes[1])}
	default:
		s = describeScalar(spec.Kind, spec.Type)
	}

	s.Description = spec.Description
	s.ReadOnly = spec.Captured()
	if s.Extras == nil {
		s.Extras = make(map[string]any)
	}
	s.Extras["x-option-names"] = append([]string(nil), spec.Names...)
	s.Extras["x-member"] = spec.Member.Name
	s.Extras["x-kind"] = spec.Kind.String()
	if spec.Kind == option.KindMap {
		s.Extras["x-key-kind"] = spec.Elements[0].String()
	}
	return s
}

func describeScalar(kind option.Kind, t reflect.Type) *jsonschema.Schema {
	for t.Kind() == reflect.Ptr && kind != option.KindBigInt {
		t = t.Elem()
	}
	switch kind {
	case option.KindBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case option.KindByte, option.KindShort, option.KindInt, option.KindLong:
		lo, hi := integerBounds(t)
		return &jsonschema.Schema{Type: "integer", Minimum: lo, Maximum: hi}
	case option.KindFloat, option.KindDouble:
		return &jsonschema.Schema{Type: "number"}
	case option.KindBigInt:
		return &jsonschema.Schema{Type: "string", Pattern: bigIntPattern}
	case option.KindString:
		return &jsonschema.Schema{Type: "string"}
	}
	return &jsonschema.Schema{Type: "string", Extras: map[string]any{"x-go-type": t.String()}}
}

func integerBounds(t reflect.Type) (json.Number, json.Number) {
	bits := t.Bits()
	switch t.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint, reflect.Uint64:
		var hi uint64 = math.MaxUint64 >> (64 - bits)
		return json.Number("0"), json.Number(strconv.FormatUint(hi, 10))
	}
	var hi int64 = math.MaxInt64 >> (64 - bits)
	return json.Number(strconv.FormatInt(-hi-1, 10)), json.Number(strconv.FormatInt(hi, 10))
}
