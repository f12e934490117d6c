package binding

import (
	"context"
	"log/slog"

	"github.com/ggoodman/cmdbind/internal/logctx"
	"github.com/ggoodman/cmdbind/option"
)

// Bind resets the instance and applies tokens in order. It stops at the first
// failing token; writes made by earlier tokens are kept, and the instance
// should not be used after a failed Bind.
func (i *Instance) Bind(tokens []Token) error {
	return i.BindContext(context.Background(), tokens)
}

// BindContext is Bind with a context carrying log correlation data.
func (i *Instance) BindContext(ctx context.Context, tokens []Token) error {
	i.Reset()
	for _, tok := range tokens {
		if err := i.apply(ctx, tok); err != nil {
			return err
		}
	}
	return nil
}

func (i *Instance) apply(ctx context.Context, tok Token) error {
	spec, ok := i.model.Lookup(tok.Name)
	if !ok || tok.Literal {
		return &option.Error{Code: option.CodeUnknownOption, Option: tok.Name, Token: tok.Value}
	}
	s := i.bySpec[spec]
	if s.readOnly {
		return &option.Error{
			Code:   option.CodeInvalidAnnotationPlacement,
			Member: spec.Member.Name,
			Option: tok.Name,
		}
	}

	occ, err := i.registry.ConvertOccurrence(spec, tok.Value, tok.HasValue)
	if err != nil {
		return err
	}
	s.store(occ)

	if i.logger.Enabled(ctx, slog.LevelDebug) {
		octx := logctx.WithOptionData(ctx, &logctx.OptionData{Name: tok.Name, Member: spec.Member.Name})
		i.logger.LogAttrs(octx, slog.LevelDebug, "option bound",
			slog.String("kind", spec.Kind.String()),
			slog.Bool("has_value", tok.HasValue),
		)
	}
	return nil
}
