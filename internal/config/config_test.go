package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/magiconair/properties"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaderlang/vader/vadererr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "python", cfg.Target)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, `
target = rust
out = build
timeout = 3s
log.level = debug
server.max_code_bytes = 2048
watch.debounce = 50ms
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rust", cfg.Target)
	assert.Equal(t, "build", cfg.OutDir)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2048, cfg.MaxCodeBytes)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "python3", cfg.Python)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Target, cfg.Target)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nada.properties"))
	require.Error(t, err)
	var ce *vadererr.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, "target = rust\ntimeout = 3\n")
	t.Setenv("VADER_TARGET", "go")
	t.Setenv("VADER_TIMEOUT", "1m")
	t.Setenv("VADER_NODE", "/opt/node")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Target)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, "/opt/node", cfg.Node)
}

func TestEnvReadOnEveryLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, "")
	t.Setenv("VADER_TARGET", "ruby")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ruby", cfg.Target)

	t.Setenv("VADER_TARGET", "kotlin")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kotlin", cfg.Target)
}

func TestInvalidValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, "timeout = pronto\n")
	_, err := Load(path)
	var ce *vadererr.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KeyTimeout, ce.Key)

	t.Setenv("VADER_TIMEOUT", "nunca")
	_, err = Load(writeFile(t, t.TempDir(), FileName, ""))
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "VADER_TIMEOUT", ce.Key)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Timeout = 0
	cfg.LogLevel = "ruidoso"
	err := cfg.Validate()
	require.Error(t, err)
	var me *vadererr.MultiError
	require.True(t, errors.As(err, &me))
	assert.Len(t, me.Errors, 2)
	assert.Equal(t, vadererr.TypeConfig, me.Type())
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("15")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)

	d, err = parseDuration(" 250ms ")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
}

func TestPropertiesRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Target = "kotlin"
	var buf bytes.Buffer
	_, err := cfg.Properties().Write(&buf, properties.UTF8)
	require.NoError(t, err)

	p, err := properties.LoadString(buf.String())
	require.NoError(t, err)
	back := Default()
	require.NoError(t, back.ApplyProperties(p, "mem"))
	assert.Equal(t, "kotlin", back.Target)
	assert.Equal(t, cfg.Timeout, back.Timeout)
}

func TestInterpreters(t *testing.T) {
	cfg := Default()
	cfg.Python = "/usr/bin/python3.12"
	assert.Equal(t, "/usr/bin/python3.12", cfg.Interpreters()["python"])
	assert.Equal(t, "node", cfg.Interpreters()["javascript"])
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogLevel = "warn"
	logger := cfg.NewLogger(&buf)
	logger.Info("oculto")
	logger.Warn("visible", "clave", 1)
	assert.NotContains(t, buf.String(), "oculto")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "vader")
}
