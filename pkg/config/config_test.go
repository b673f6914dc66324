package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, Outputs{
		Dir:     ".",
		Lexer:   "lexer.txt",
		Parser:  "parser.txt",
		Symbols: "symbol.txt",
		Errors:  "error.txt",
	}, cfg.Outputs)
	assert.Equal(t, 1000, cfg.Analysis.MaxDepth)
	assert.False(t, cfg.Analysis.Parallel)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadTOML(t *testing.T) {
	t.Setenv("MINIC_OUT", "/tmp/minic-out")
	path := writeFile(t, "minic.toml", `
[outputs]
dir = "$MINIC_OUT"
errors = "errs.txt"

[analysis]
max_depth = 200
parallel = true

[log]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/minic-out", cfg.Outputs.Dir)
	assert.Equal(t, "errs.txt", cfg.Outputs.Errors)
	assert.Equal(t, "parser.txt", cfg.Outputs.Parser)
	assert.Equal(t, 200, cfg.Analysis.MaxDepth)
	assert.True(t, cfg.Analysis.Parallel)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, filepath.Join("/tmp/minic-out", "errs.txt"), cfg.Outputs.Path(cfg.Outputs.Errors))
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "minic.yaml", `
outputs:
  symbols: syms.txt
analysis:
  max_depth: 50
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "syms.txt", cfg.Outputs.Symbols)
	assert.Equal(t, 50, cfg.Analysis.MaxDepth)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "not found")

	_, err = Load(writeFile(t, "minic.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = Load(writeFile(t, "bad.toml", "[outputs\n"))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = Load(writeFile(t, "bad.yml", "outputs: [\n"))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "info"

	var buf bytes.Buffer
	log, err := cfg.Logger(&buf)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown", "line", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "line=3")

	cfg.Log.Format = "json"
	buf.Reset()
	log, err = cfg.Logger(&buf)
	require.NoError(t, err)
	log.Warn("w")
	assert.Contains(t, buf.String(), `"msg":"w"`)

	cfg.Log.Level = "loud"
	_, err = cfg.Logger(&buf)
	assert.Error(t, err)

	cfg.Log.Level = "info"
	cfg.Log.Format = "xml"
	_, err = cfg.Logger(&buf)
	assert.Error(t, err)
}
