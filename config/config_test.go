package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RocketPrinter/HexagonalWFC/config"
	"github.com/RocketPrinter/HexagonalWFC/wfc"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15, cfg.Grid.Size)
	assert.True(t, cfg.Strict())
	assert.Equal(t, "drain", cfg.Pacing.Mode)
	assert.Equal(t, 1, cfg.Pacing.StepsPerTick)
	assert.Equal(t, 50*time.Millisecond, cfg.Pacing.Interval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, wfc.DefaultPacing(), cfg.EnginePacing())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexwfc.yaml")
	doc := `
catalog: tiles.yaml
grid:
  size: 21
  seed: 1234
  strict: false
pacing:
  mode: step
  steps_per_tick: 8
  interval: 10ms
log:
  level: debug
  format: json
output:
  event_dir: runs
  index: runs/index.db
  listen: ":8080"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tiles.yaml", cfg.Catalog)
	assert.Equal(t, 21, cfg.Grid.Size)
	assert.Equal(t, int64(1234), cfg.Grid.Seed)
	assert.False(t, cfg.Strict())
	assert.Equal(t, wfc.Pacing{Mode: wfc.PaceStep, StepsPerTick: 8}, cfg.EnginePacing())
	assert.Equal(t, 10*time.Millisecond, cfg.Pacing.Interval)
	assert.Equal(t, "runs", cfg.Output.EventDir)
	assert.Equal(t, ":8080", cfg.Output.Listen)
	assert.Len(t, cfg.EngineOptions(), 3)
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"even size": "grid: {size: 4}",
		"neg size":  "grid: {size: -3}",
		"mode":      "pacing: {mode: turbo}",
		"steps":     "pacing: {steps_per_tick: -1}",
		"interval":  "pacing: {interval: -5ms}",
		"level":     "log: {level: chatty}",
		"format":    "log: {format: xml}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}

	_, err := config.Parse([]byte("grid: [unclosed"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
}

func TestEngineOptions_BuildEngine(t *testing.T) {
	cfg, err := config.Parse([]byte("grid: {size: 5, seed: 9}\npacing: {mode: step, steps_per_tick: 3}"))
	require.NoError(t, err)

	cat := mustCatalog(t)
	e, err := wfc.New(cat, cfg.Grid.Size, cfg.EngineOptions()...)
	require.NoError(t, err)
	assert.Equal(t, int64(9), e.Seed())
	assert.True(t, e.Strict())
	assert.Equal(t, wfc.PaceStep, e.Pacing().Mode)
	assert.Equal(t, 3, e.Pacing().StepsPerTick)
}

func TestLogger_Format(t *testing.T) {
	cfg, err := config.Parse([]byte("log: {level: warn, format: json}"))
	require.NoError(t, err)

	var buf bytes.Buffer
	log := cfg.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), out)
	assert.Contains(t, out, `"msg":"shown"`)
}
