package model

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ggoodman/cmdbind/convert"
	"github.com/ggoodman/cmdbind/option"
)

// DefaultCacheSize is the number of compiled contracts a Builder keeps unless
// WithCacheSize says otherwise.
const DefaultCacheSize = 128

// Builder compiles contract types into option specifications.
type Builder struct {
	registry  *convert.Registry
	logger    *slog.Logger
	cacheSize int
	cache     *lru.Cache[reflect.Type, *compiled]
}

// BuilderOption configures NewBuilder.
type BuilderOption func(*Builder)

// WithRegistry sets the converter registry used to decide which member types
// are bindable. The default is convert.Default().
func WithRegistry(r *convert.Registry) BuilderOption {
	return func(b *Builder) {
		if r != nil {
			b.registry = r
		}
	}
}

// WithCacheSize bounds the number of compiled contracts kept.
func WithCacheSize(n int) BuilderOption {
	return func(b *Builder) { b.cacheSize = n }
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder returns a Builder configured by opts.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	b := &Builder{
		registry:  convert.Default(),
		logger:    slog.Default(),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	cache, err := lru.New[reflect.Type, *compiled](b.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("model: failed to create contract cache: %w", err)
	}
	b.cache = cache
	return b, nil
}

// Registry returns the converter registry the builder validates against.
func (b *Builder) Registry() *convert.Registry { return b.registry }

var (
	defaultBuilder     *Builder
	defaultBuilderErr  error
	defaultBuilderOnce sync.Once
)

// Build compiles contract with a shared Builder using the built-in registry.
func Build(contract any) (*Model, error) {
	defaultBuilderOnce.Do(func() {
		defaultBuilder, defaultBuilderErr = NewBuilder()
	})
	if defaultBuilderErr != nil {
		return nil, defaultBuilderErr
	}
	return defaultBuilder.Build(contract)
}

// Build compiles the contract type of contract and binds it to contract as
// the prototype. contract is a struct value, a pointer to one, or a typed nil
// pointer when there are no initializers to capture.
func (b *Builder) Build(contract any) (*Model, error) {
	if contract == nil {
		return nil, errors.New("model: nil contract")
	}
	v := reflect.ValueOf(contract)
	var proto reflect.Value
	switch {
	case v.Kind() == reflect.Ptr && v.Type().Elem().Kind() == reflect.Struct:
		if v.IsNil() {
			proto = reflect.Zero(v.Type().Elem())
		} else {
			proto = v.Elem()
		}
	case v.Kind() == reflect.Struct:
		proto = v
	default:
		return nil, fmt.Errorf("model: contract must be a struct or pointer to struct, got %T", contract)
	}

	t := proto.Type()
	c, err := b.getOrCompile(t)
	if err != nil {
		return nil, err
	}

	// Snapshot the prototype so later changes to the caller's value do not
	// leak into the model.
	snapshot := reflect.New(t).Elem()
	snapshot.Set(proto)

	m := &Model{
		contract:  t,
		prototype: snapshot,
		compiled:  c,
		captured:  make(map[*option.Spec]reflect.Value),
	}
	for _, s := range c.specs {
		if s.Captured() {
			m.captured[s] = snapshot.FieldByIndex(s.Member.Index)
		}
	}
	return m, nil
}

func (b *Builder) getOrCompile(t reflect.Type) (*compiled, error) {
	if c, ok := b.cache.Get(t); ok {
		b.logger.Debug("contract model cache hit", slog.String("contract", t.String()))
		return c, nil
	}
	c, err := compile(t, b.registry)
	if err != nil {
		return nil, err
	}
	b.cache.Add(t, c)
	b.logger.Debug("contract model compiled",
		slog.String("contract", t.String()),
		slog.Int("options", len(c.specs)),
	)
	return c, nil
}
