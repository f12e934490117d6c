package logctx

import (
	"context"
	"log/slog"
)

// Handler decorates records with the bind session and option data found in
// the record's context.
type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if bd, ok := ctx.Value(bindDataKey{}).(*BindData); ok {
		r.AddAttrs(slog.Group("bind",
			slog.String("session", bd.SessionID),
			slog.String("contract", bd.Contract),
			slog.Int("args", bd.Args),
		))
	}

	if od, ok := ctx.Value(optionDataKey{}).(*OptionData); ok {
		r.AddAttrs(slog.Group("opt",
			slog.String("name", od.Name),
			slog.String("member", od.Member),
		))
	}

	return h.Handler.Handle(ctx, r)
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{Handler: h.Handler.WithGroup(name)}
}

// Wrap returns l with its handler wrapped in a Handler, unless it already is
// one.
func Wrap(l *slog.Logger) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	if _, ok := l.Handler().(Handler); ok {
		return l
	}
	return slog.New(Handler{Handler: l.Handler()})
}

type bindDataKey struct{}

type BindData struct {
	SessionID string
	Contract  string
	Args      int
}

func WithBindData(ctx context.Context, data *BindData) context.Context {
	return context.WithValue(ctx, bindDataKey{}, data)
}

type optionDataKey struct{}

type OptionData struct {
	Name   string
	Member string
}

func WithOptionData(ctx context.Context, data *OptionData) context.Context {
	return context.WithValue(ctx, optionDataKey{}, data)
}
