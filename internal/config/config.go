// Package config resolves vader settings from defaults, a vader.properties file
// and VADER_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/magiconair/properties"
	"github.com/xyproto/env/v2"

	"vaderlang/vader/vadererr"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "vader.properties"

// Property keys.
const (
	KeyTarget       = "target"
	KeyOut          = "out"
	KeyPython       = "python"
	KeyNode         = "node"
	KeyRuby         = "ruby"
	KeyPHP          = "php"
	KeyTimeout      = "timeout"
	KeyAddr         = "addr"
	KeyLogLevel     = "log.level"
	KeyAssistantURL = "assistant.url"
	KeyMaxCode      = "server.max_code_bytes"
	KeyDebounce     = "watch.debounce"
)

// Config holds every tunable of the tool.
type Config struct {
	Target       string
	OutDir       string
	Python       string
	Node         string
	Ruby         string
	PHP          string
	Timeout      time.Duration
	Addr         string
	LogLevel     string
	AssistantURL string
	MaxCodeBytes int
	Debounce     time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Target:       "python",
		OutDir:       "dist",
		Python:       "python3",
		Node:         "node",
		Ruby:         "ruby",
		PHP:          "php",
		Timeout:      10 * time.Second,
		Addr:         ":8080",
		LogLevel:     "info",
		MaxCodeBytes: 1 << 20,
		Debounce:     200 * time.Millisecond,
	}
}

// Load resolves the configuration. An empty path means FileName in the working
// directory, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	switch {
	case err == nil:
		if err := cfg.ApplyProperties(p, path); err != nil {
			return cfg, err
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return cfg, vadererr.NewConfigError(path, "-", err.Error())
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyProperties overrides fields with the keys present in p.
func (c *Config) ApplyProperties(p *properties.Properties, source string) error {
	c.Target = p.GetString(KeyTarget, c.Target)
	c.OutDir = p.GetString(KeyOut, c.OutDir)
	c.Python = p.GetString(KeyPython, c.Python)
	c.Node = p.GetString(KeyNode, c.Node)
	c.Ruby = p.GetString(KeyRuby, c.Ruby)
	c.PHP = p.GetString(KeyPHP, c.PHP)
	c.Addr = p.GetString(KeyAddr, c.Addr)
	c.LogLevel = p.GetString(KeyLogLevel, c.LogLevel)
	c.AssistantURL = p.GetString(KeyAssistantURL, c.AssistantURL)

	if v, ok := p.Get(KeyTimeout); ok {
		d, err := parseDuration(v)
		if err != nil {
			return vadererr.NewConfigError(source, KeyTimeout, err.Error())
		}
		c.Timeout = d
	}
	if v, ok := p.Get(KeyDebounce); ok {
		d, err := parseDuration(v)
		if err != nil {
			return vadererr.NewConfigError(source, KeyDebounce, err.Error())
		}
		c.Debounce = d
	}
	if v, ok := p.Get(KeyMaxCode); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return vadererr.NewConfigError(source, KeyMaxCode, "not a number: "+v)
		}
		c.MaxCodeBytes = n
	}
	return nil
}

// ApplyEnv overrides fields with the VADER_* variables that are set.
func (c *Config) ApplyEnv() error {
	// env caches the environment on first use; reload so every Load sees the current values.
	env.Load()
	c.Target = env.Str("VADER_TARGET", c.Target)
	c.OutDir = env.Str("VADER_OUT", c.OutDir)
	c.Python = env.Str("VADER_PYTHON", c.Python)
	c.Node = env.Str("VADER_NODE", c.Node)
	c.Ruby = env.Str("VADER_RUBY", c.Ruby)
	c.PHP = env.Str("VADER_PHP", c.PHP)
	c.Addr = env.Str("VADER_ADDR", c.Addr)
	c.LogLevel = env.Str("VADER_LOG_LEVEL", c.LogLevel)
	c.AssistantURL = env.Str("VADER_ASSISTANT_URL", c.AssistantURL)
	c.MaxCodeBytes = env.Int("VADER_MAX_CODE_BYTES", c.MaxCodeBytes)

	if env.Has("VADER_TIMEOUT") {
		d, err := parseDuration(env.Str("VADER_TIMEOUT"))
		if err != nil {
			return vadererr.NewConfigError("env", "VADER_TIMEOUT", err.Error())
		}
		c.Timeout = d
	}
	return nil
}

// parseDuration accepts Go durations ("1m30s") and bare seconds ("15").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// Validate checks values that have a restricted range.
func (c Config) Validate() error {
	errs := &vadererr.MultiError{}
	if c.Timeout <= 0 {
		errs.Errors = append(errs.Errors, vadererr.NewConfigError("", KeyTimeout, "must be positive"))
	}
	if c.MaxCodeBytes <= 0 {
		errs.Errors = append(errs.Errors, vadererr.NewConfigError("", KeyMaxCode, "must be positive"))
	}
	if c.Debounce < 0 {
		errs.Errors = append(errs.Errors, vadererr.NewConfigError("", KeyDebounce, "must not be negative"))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs.Errors = append(errs.Errors, vadererr.NewConfigError("", KeyLogLevel, "unknown level "+c.LogLevel))
	}
	return errs.ErrOrNil()
}

// Interpreters maps each runnable target to its interpreter command.
func (c Config) Interpreters() map[string]string {
	return map[string]string{
		"python":     c.Python,
		"javascript": c.Node,
		"ruby":       c.Ruby,
		"php":        c.PHP,
	}
}

// Properties renders the configuration as a properties document, for new projects.
func (c Config) Properties() *properties.Properties {
	p := properties.NewProperties()
	set := func(k, v string) { _, _, _ = p.Set(k, v) }
	set(KeyTarget, c.Target)
	set(KeyOut, c.OutDir)
	set(KeyPython, c.Python)
	set(KeyNode, c.Node)
	set(KeyTimeout, c.Timeout.String())
	set(KeyLogLevel, c.LogLevel)
	return p
}

// NewLogger builds the tool's logger at the configured level.
func (c Config) NewLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "vader",
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}
