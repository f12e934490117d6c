package model_test

import (
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggoodman/cmdbind/convert"
	"github.com/ggoodman/cmdbind/model"
	"github.com/ggoodman/cmdbind/option"
)

type primitives struct {
	Bool   func() bool    `option:"-b"`
	Byte   func() int8    `option:"-y"`
	Short  func() int16   `option:"-s"`
	Int    func() int32   `option:"-i"`
	Long   func() int64   `option:"-l"`
	Float  func() float32 `option:"-f"`
	Double func() float64 `option:"-d"`
}

type objects struct {
	Bool    func() *bool                   `option:"-b"`
	Byte    func() *int8                   `option:"-y"`
	Short   func() *int16                  `option:"-s"`
	Int     func() *int32                  `option:"-i"`
	Long    func() *int64                  `option:"-l"`
	Float   func() *float32                `option:"-f"`
	Double  func() *float64                `option:"-d"`
	BigInt  func() *big.Int                `option:"-bigint"`
	String  func() *string                 `option:"-string"`
	List    func() []string                `option:"-list"`
	Map     func() map[any]any             `option:"-map" type:"int,float64"`
	Set     func() option.SortedSet[int16] `option:"-set"`
	Untyped func() []any                   `option:"-u"`
	Tags    func() map[string]struct{}     `option:"-t,--tag"`
}

func TestBuild_PrimitiveKinds(t *testing.T) {
	t.Parallel()

	m, err := model.Build((*primitives)(nil))
	require.NoError(t, err)

	want := []struct {
		name   string
		member string
		kind   option.Kind
	}{
		{"-b", "Bool", option.KindBoolean},
		{"-y", "Byte", option.KindByte},
		{"-s", "Short", option.KindShort},
		{"-i", "Int", option.KindInt},
		{"-l", "Long", option.KindLong},
		{"-f", "Float", option.KindFloat},
		{"-d", "Double", option.KindDouble},
	}
	specs := m.Specs()
	require.Len(t, specs, len(want))
	for i, w := range want {
		assert.Equal(t, []string{w.name}, specs[i].Names)
		assert.Equal(t, w.member, specs[i].Member.Name)
		assert.Equal(t, w.kind, specs[i].Kind)
		assert.False(t, specs[i].Boxed)
		assert.True(t, specs[i].Member.Accessor)
		assert.False(t, specs[i].Captured())
	}
	assert.Equal(t, reflect.TypeOf(primitives{}), m.Contract())
}

func TestBuild_ObjectKinds(t *testing.T) {
	t.Parallel()

	m, err := model.Build((*objects)(nil))
	require.NoError(t, err)

	lookup := func(name string) *option.Spec {
		t.Helper()
		s, ok := m.Lookup(name)
		require.True(t, ok, name)
		return s
	}

	for _, name := range []string{"-b", "-y", "-s", "-i", "-l", "-f", "-d", "-string"} {
		assert.True(t, lookup(name).Boxed, name)
	}
	assert.Equal(t, option.KindBigInt, lookup("-bigint").Kind)
	assert.False(t, lookup("-bigint").Boxed)

	list := lookup("-list")
	assert.Equal(t, option.KindList, list.Kind)
	assert.Equal(t, []option.Kind{option.KindString}, list.Elements)

	mp := lookup("-map")
	assert.Equal(t, option.KindMap, mp.Kind)
	assert.Equal(t, []option.Kind{option.KindInt, option.KindDouble}, mp.Elements)
	assert.Equal(t, []reflect.Type{reflect.TypeOf(0), reflect.TypeOf(0.0)}, mp.ElementTypes)

	set := lookup("-set")
	assert.Equal(t, option.KindSortedSet, set.Kind)
	assert.Equal(t, []option.Kind{option.KindShort}, set.Elements)

	untyped := lookup("-u")
	assert.Equal(t, []option.Kind{option.KindString}, untyped.Elements)
	assert.Equal(t, reflect.TypeOf(""), untyped.ElementTypes[0])

	tags := lookup("--tag")
	assert.Same(t, tags, lookup("-t"))
	assert.Equal(t, option.KindSet, tags.Kind)
}

func TestBuild_NamingConflict(t *testing.T) {
	t.Parallel()

	type contract struct {
		A func() int `option:"-x,--alpha"`
		B func() int `option:"--beta,-x"`
	}
	_, err := model.Build((*contract)(nil))
	require.ErrorIs(t, err, option.ErrNamingConflict)

	var oe *option.Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "-x", oe.Option)
	assert.Equal(t, "A", oe.Other)
	assert.Equal(t, "B", oe.Member)
}

func TestBuild_RepeatedNameWithinMemberCollapses(t *testing.T) {
	t.Parallel()

	type contract struct {
		A func() int `option:"-x, -x ,--ex"`
	}
	m, err := model.Build((*contract)(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"-x", "--ex"}, m.Specs()[0].Names)
}

func TestBuild_RejectsTaggedScalarFields(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"bool":   &struct{ V bool `option:"-b"` }{V: true},
		"int8":   &struct{ V int8 `option:"-y"` }{V: 1},
		"int16":  &struct{ V int16 `option:"-s"` }{V: 2},
		"int32":  &struct{ V int32 `option:"-i"` }{V: 3},
		"int64":  &struct{ V int64 `option:"-l"` }{V: 4},
		"float":  &struct{ V float32 `option:"-f"` }{V: 5},
		"double": &struct{ V float64 `option:"-d"` }{V: 6},
		"boxed":  &struct{ V *int32 `option:"-i"` }{},
		"string": &struct{ V string `option:"-string"` }{V: "abc"},
		"bigint": &struct{ V *big.Int `option:"-bigint"` }{V: big.NewInt(7)},
	}
	for name, contract := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := model.Build(contract)
			require.ErrorIs(t, err, option.ErrInvalidAnnotationPlacement)
			assert.Equal(t, option.PlacementMessage, err.Error())
		})
	}
}

func TestBuild_CapturesCompositeFieldInitializers(t *testing.T) {
	t.Parallel()

	type contract struct {
		Sources []string `option:"-s"`
		Other   string
	}
	proto := &contract{Sources: []string{"a"}, Other: "x"}

	m, err := model.Build(proto)
	require.NoError(t, err)

	spec, ok := m.Lookup("-s")
	require.True(t, ok)
	assert.True(t, spec.Captured())

	captured, ok := m.Captured(spec)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, captured.Interface())

	proto.Sources = []string{"changed"}
	proto.Other = "y"
	captured, _ = m.Captured(spec)
	assert.Equal(t, []string{"a"}, captured.Interface())
	assert.Equal(t, "x", m.Prototype().FieldByName("Other").Interface())
}

func TestBuild_AccessorSignature(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"params":    (*struct{ V func(int) int `option:"-v"` })(nil),
		"no result": (*struct{ V func() `option:"-v"` })(nil),
		"two":       (*struct{ V func() (int, error) `option:"-v"` })(nil),
		"variadic":  (*struct{ V func(...int) int `option:"-v"` })(nil),
	}
	for name, contract := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := model.Build(contract)
			require.ErrorIs(t, err, option.ErrInvalidAnnotationPlacement)
			assert.Contains(t, err.Error(), "accessor must take no arguments")
		})
	}
}

func TestBuild_UnexportedMember(t *testing.T) {
	t.Parallel()

	type contract struct {
		hidden func() int `option:"-h"`
	}
	_, err := model.Build((*contract)(nil))
	require.ErrorIs(t, err, option.ErrInvalidAnnotationPlacement)
	assert.Contains(t, err.Error(), "hidden is unexported")
}

func TestBuild_InvalidNames(t *testing.T) {
	t.Parallel()

	type empty struct {
		V func() int `option:" , "`
	}
	_, err := model.Build((*empty)(nil))
	require.ErrorIs(t, err, option.ErrInvalidOptionName)

	type spaced struct {
		V func() int `option:"-a b"`
	}
	_, err = model.Build((*spaced)(nil))
	require.ErrorIs(t, err, option.ErrInvalidOptionName)

	type equals struct {
		V func() int `option:"--a=b"`
	}
	_, err = model.Build((*equals)(nil))
	require.ErrorIs(t, err, option.ErrInvalidOptionName)
}

func TestBuild_UnsupportedTypes(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"chan":            (*struct{ V func() chan int `option:"-v"` })(nil),
		"struct":          (*struct{ V func() struct{ A int } `option:"-v"` })(nil),
		"unknown tag":     (*struct{ V func() []any `option:"-v" type:"complex"` })(nil),
		"not assignable":  (*struct{ V func() []fmtStringer `option:"-v" type:"int"` })(nil),
		"nested":          (*struct{ V func() [][]int `option:"-v"` })(nil),
		"pointer set":     (*struct{ V func() map[*int16]struct{} `option:"-v"` })(nil),
		"pointer key":     (*struct{ V func() map[*int]string `option:"-v"` })(nil),
		"bigint key":      (*struct{ V func() map[*big.Int]int `option:"-v"` })(nil),
		"bigint override": (*struct{ V func() map[any]any `option:"-v" type:"bigint,int"` })(nil),
	}
	for name, contract := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := model.Build(contract)
			require.ErrorIs(t, err, option.ErrUnsupportedType)
		})
	}
}

type fmtStringer interface{ String() string }

func TestBuild_BoxedElementsAllowedOutsideKeys(t *testing.T) {
	t.Parallel()

	type contract struct {
		Sorted func() option.SortedSet[*int16] `option:"-s"`
		Values func() map[string]*int64        `option:"-m"`
		List   func() []*float64               `option:"-l"`
	}
	m, err := model.Build((*contract)(nil))
	require.NoError(t, err)
	s, _ := m.Lookup("-s")
	assert.Equal(t, []option.Kind{option.KindShort}, s.Elements)
}

func TestBuild_DefaultBuilderIsShared(t *testing.T) {
	t.Parallel()

	first, err := model.Build((*primitives)(nil))
	require.NoError(t, err)
	second, err := model.Build((*primitives)(nil))
	require.NoError(t, err)
	assert.Same(t, first.Specs()[0], second.Specs()[0])
}

type Common struct {
	Verbose func() bool `option:"-v,--verbose"`
}

func TestBuild_FlattensEmbeddedStructs(t *testing.T) {
	t.Parallel()

	type contract struct {
		Common
		Name func() string `option:"--name"`
	}
	m, err := model.Build((*contract)(nil))
	require.NoError(t, err)

	s, ok := m.Lookup("--verbose")
	require.True(t, ok)
	assert.Equal(t, "Common.Verbose", s.Member.Name)
	assert.Equal(t, []int{0, 0}, s.Member.Index)
	assert.Len(t, m.Specs(), 2)
}

func TestBuild_InvalidContracts(t *testing.T) {
	t.Parallel()

	_, err := model.Build(nil)
	assert.Error(t, err)

	_, err = model.Build(42)
	assert.ErrorContains(t, err, "must be a struct or pointer to struct")

	n := 3
	_, err = model.Build(&n)
	assert.Error(t, err)
}

func TestBuilder_CachesCompiledContracts(t *testing.T) {
	t.Parallel()

	b, err := model.NewBuilder(model.WithCacheSize(4))
	require.NoError(t, err)

	first, err := b.Build((*primitives)(nil))
	require.NoError(t, err)
	second, err := b.Build(&primitives{})
	require.NoError(t, err)

	require.Len(t, second.Specs(), len(first.Specs()))
	for i := range first.Specs() {
		assert.Same(t, first.Specs()[i], second.Specs()[i])
	}
}

func TestNewBuilder_RejectsInvalidCacheSize(t *testing.T) {
	t.Parallel()

	_, err := model.NewBuilder(model.WithCacheSize(0))
	assert.ErrorContains(t, err, "failed to create contract cache")
}

func TestBuilder_CustomRegistry(t *testing.T) {
	t.Parallel()

	type contract struct {
		Timeout func() time.Duration `option:"--timeout"`
	}

	b, err := model.NewBuilder(model.WithRegistry(convert.New(convert.With(time.ParseDuration))))
	require.NoError(t, err)
	m, err := b.Build((*contract)(nil))
	require.NoError(t, err)
	s, _ := m.Lookup("--timeout")
	assert.Equal(t, option.KindValue, s.Kind)

	m, err = model.Build((*contract)(nil))
	require.NoError(t, err)
	s, _ = m.Lookup("--timeout")
	assert.Equal(t, option.KindLong, s.Kind)
}
