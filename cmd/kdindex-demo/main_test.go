package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AllFormats(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-n", "2000", "-seed", "7", "-k", "2", "-formats", "float32,float64,float16,r3",
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "cpu: ")
	for _, f := range []string{"float32", "float64", "float16", "r3"} {
		assert.Contains(t, out, "== "+f+": 2000 points")
	}
	// Two indices per format, two neighbors each.
	assert.Equal(t, 8, strings.Count(out, "knnSearch(nn=2)"))
	assert.Equal(t, 16, strings.Count(out, "ret_index="))
	assert.Equal(t, 8, strings.Count(out, "mem: max_rss="))
	assert.Contains(t, stderr.String(), "kd-tree built")
}

func TestRun_ConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
points: 500
k: 3
leaf_size: 4
formats: [float64]
log_format: json
`), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-config", path, "-n", "300", "-seed", "1"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stdout.String(), "== float64: 300 points")
	assert.Equal(t, 2, strings.Count(stdout.String(), "knnSearch(nn=3)"))
	assert.Contains(t, stderr.String(), `"msg":"kd-tree built"`)
	assert.Contains(t, stderr.String(), `"leaf_size":4`)
}

func TestRun_InvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-formats", "float128"}, &stdout, &stderr)
	assert.ErrorContains(t, err, `unknown format "float128"`)

	err = run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)
	assert.ErrorContains(t, err, "read config")
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k: 4\nquery: [0.1, 0.2, 0.3]\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.K)
	assert.Equal(t, [3]float64{0.1, 0.2, 0.3}, cfg.Query)
	assert.Equal(t, 1_000_000, cfg.Points)
	assert.Equal(t, []string{"float32", "float64"}, cfg.Formats)
	require.NoError(t, cfg.validate())
}

func TestConfig_Validate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"negative points": func(c *Config) { c.Points = -1 },
		"zero range":      func(c *Config) { c.MaxRange = 0 },
		"zero leaf":       func(c *Config) { c.LeafSize = 0 },
		"zero k":          func(c *Config) { c.K = 0 },
		"no formats":      func(c *Config) { c.Formats = nil },
		"bad level":       func(c *Config) { c.LogLevel = "chatty" },
		"bad log format":  func(c *Config) { c.LogFormat = "xml" },
	} {
		cfg := defaultConfig()
		mutate(&cfg)
		assert.Error(t, cfg.validate(), name)
	}
}
