package refcell

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCellConfig_Defaults(t *testing.T) {
	cfg := newCellConfig(nil)

	assert.Empty(t, cfg.name)
	assert.Nil(t, cfg.logger)
	assert.Nil(t, cfg.metrics)
	assert.False(t, cfg.tracing)
	assert.Equal(t, "anonymous", cfg.label())
}

func TestNewCellConfig_WithName(t *testing.T) {
	cfg := newCellConfig([]Option{WithName("app-config")})
	assert.Equal(t, "app-config", cfg.name)
	assert.Equal(t, "app-config", cfg.label())
}

func TestNewCellConfig_AutoNameWhenObserved(t *testing.T) {
	// An unnamed cell that logs gets a generated identity for attribution.
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg := newCellConfig([]Option{WithLogger(logger)})

	require.NotEmpty(t, cfg.name)
	assert.True(t, strings.HasPrefix(cfg.name, "cell-"), "got %q", cfg.name)
}

func TestNewCellConfig_NoAutoNameWhenSilent(t *testing.T) {
	cfg := newCellConfig([]Option{})
	assert.Empty(t, cfg.name)
}

func TestNewCellConfig_ExplicitNameWins(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg := newCellConfig([]Option{WithLogger(logger), WithName("explicit")})
	assert.Equal(t, "explicit", cfg.name)
}

func TestWithMetrics_Disable(t *testing.T) {
	cfg := newCellConfig([]Option{WithMetrics(true), WithMetrics(false)})
	assert.Nil(t, cfg.metrics)

	// record falls back to the noop recorder.
	_, isNoop := cfg.record().(noopMetrics)
	assert.True(t, isNoop)
}

func TestWithLogger_TransitionLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cell := NewRef[int](WithName("logged"), WithLogger(logger))

	v := 1
	require.NoError(t, cell.With(&v, func() error { return nil }))

	out := buf.String()
	assert.Contains(t, out, "reference registered")
	assert.Contains(t, out, "scoped registration entered")
	assert.Contains(t, out, "reference cleared")
	assert.Contains(t, out, "cell=logged")
}

func TestZeroValueCell_NeverLogs(t *testing.T) {
	// The default handler would write to stderr; a zero-value cell's config
	// has no logger, so logEvent must return without formatting anything.
	var cell Ref[int]
	v := 1
	cell.Set(&v)
	cell.Clear()
	assert.Nil(t, cell.cfg.logger)
}
