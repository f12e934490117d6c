package logctx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_AddsContextGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Wrap(slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx := WithBindData(context.Background(), &BindData{SessionID: "s-1", Contract: "main.cmd", Args: 3})
	ctx = WithOptionData(ctx, &OptionData{Name: "-v", Member: "Verbose"})
	logger.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, map[string]any{"session": "s-1", "contract": "main.cmd", "args": float64(3)}, rec["bind"])
	assert.Equal(t, map[string]any{"name": "-v", "member": "Verbose"}, rec["opt"])
}

func TestHandler_WithoutContextData(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Wrap(slog.New(slog.NewJSONHandler(&buf, nil))).With("k", "v")
	logger.Info("plain")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "v", rec["k"])
	assert.NotContains(t, rec, "bind")
	assert.NotContains(t, rec, "opt")
}

func TestWrap_Idempotent(t *testing.T) {
	t.Parallel()

	l := Wrap(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	assert.Same(t, l, Wrap(l))
	assert.NotNil(t, Wrap(nil))
}
