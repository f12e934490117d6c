package cmdbind

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ggoodman/cmdbind/binding"
	"github.com/ggoodman/cmdbind/convert"
	"github.com/ggoodman/cmdbind/internal/logctx"
	"github.com/ggoodman/cmdbind/internal/tokenize"
	"github.com/ggoodman/cmdbind/model"
)

// CommandLine couples a contract model with the command instance it backs.
type CommandLine struct {
	model    *model.Model
	instance *binding.Instance
	logger   *slog.Logger
}

// Option configures New.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	registry      *convert.Registry
	builder       *model.Builder
	boxedDefaults bool
}

// WithLogger sets the logger for debug records. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRegistry sets the converter registry. It is ignored when WithBuilder is
// also given; the builder's registry wins.
func WithRegistry(r *convert.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithBuilder shares a model builder, and its contract cache, between
// command lines.
func WithBuilder(b *model.Builder) Option {
	return func(c *config) { c.builder = b }
}

// WithBoxedDefaults makes unset pointer-to-primitive accessors return a
// pointer to the zero value instead of nil.
func WithBoxedDefaults() Option {
	return func(c *config) { c.boxedDefaults = true }
}

// New builds the model of contract and synthesizes its command instance.
// contract is a struct, a pointer to a struct acting as prototype, or a typed
// nil pointer.
func New(contract any, opts ...Option) (*CommandLine, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := logctx.Wrap(cfg.logger)

	b := cfg.builder
	if b == nil {
		var err error
		b, err = model.NewBuilder(model.WithRegistry(cfg.registry), model.WithLogger(logger))
		if err != nil {
			return nil, err
		}
	}

	m, err := b.Build(contract)
	if err != nil {
		return nil, err
	}

	iopts := []binding.Option{binding.WithRegistry(b.Registry()), binding.WithLogger(logger)}
	if cfg.boxedDefaults {
		iopts = append(iopts, binding.WithBoxedDefaults())
	}
	inst, err := binding.Instantiate(m, iopts...)
	if err != nil {
		return nil, err
	}

	return &CommandLine{model: m, instance: inst, logger: logger}, nil
}

// Command returns the synthesized instance as a pointer to the contract.
func (c *CommandLine) Command() any { return c.instance.Command() }

// Model returns the contract model.
func (c *CommandLine) Model() *model.Model { return c.model }

// Instance returns the value-slot instance backing Command.
func (c *CommandLine) Instance() *binding.Instance { return c.instance }

// Parse binds args to the command instance.
func (c *CommandLine) Parse(args ...string) error {
	return c.ParseContext(context.Background(), args...)
}

// ParseContext binds args to the command instance. The context only carries
// log correlation data; binding never blocks.
func (c *CommandLine) ParseContext(ctx context.Context, args ...string) error {
	ctx = logctx.WithBindData(ctx, &logctx.BindData{
		SessionID: uuid.NewString(),
		Contract:  c.model.Contract().String(),
		Args:      len(args),
	})
	tokens := tokenize.Tokenize(args, c.lookup)
	c.logger.DebugContext(ctx, "binding command line", slog.Int("tokens", len(tokens)))
	return c.instance.BindContext(ctx, tokens)
}

func (c *CommandLine) lookup(name string) (bool, bool) {
	spec, ok := c.model.Lookup(name)
	if !ok {
		return false, false
	}
	return spec.TakesValue(), true
}

// Command returns the command instance of c typed as *T.
func Command[T any](c *CommandLine) (*T, error) {
	t, ok := binding.As[T](c.instance)
	if !ok {
		return nil, fmt.Errorf("cmdbind: command is %s, not %T", c.model.Contract(), (*T)(nil))
	}
	return t, nil
}

// Populate builds a command line for T and parses args into it.
func Populate[T any](args ...string) (*T, error) {
	c, err := New((*T)(nil))
	if err != nil {
		return nil, err
	}
	if err := c.Parse(args...); err != nil {
		return nil, err
	}
	return Command[T](c)
}
