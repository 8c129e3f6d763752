package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

const (
	DefaultDBPath     = "~/.local/share/sortable/sortable.db"
	DefaultConfigPath = "~/.config/sortable/config.json"
	DefaultAddr       = "127.0.0.1:8080"
	DefaultPageSize   = 100
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultRateLimit  = 20
	DefaultRateBurst  = 40
)

var (
	ErrConfigInvalid      = errors.New("invalid config")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigExists       = errors.New("config file already exists")
)

// Config holds the settings shared by the CLI, the HTTP server and the MCP server
type Config struct {
	DBPath    string  `json:"db"`
	Addr      string  `json:"addr"`
	Token     string  `json:"token,omitempty"` // Bearer token required for reordering; empty disables the check
	PageSize  int     `json:"page_size"`
	LogLevel  string  `json:"log_level"`
	LogFormat string  `json:"log_format"`
	RateLimit float64 `json:"rate_limit"` // Write requests per second per server
	RateBurst int     `json:"rate_burst"`

	// Source is the config file that was loaded, empty when none
	Source string `json:"-"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DBPath:    DefaultDBPath,
		Addr:      DefaultAddr,
		PageSize:  DefaultPageSize,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		RateLimit: DefaultRateLimit,
		RateBurst: DefaultRateBurst,
	}
}

// DBPath returns the database path from SORTABLE_DB env var,
// falling back to DefaultDBPath.
func DBPath() string {
	if env := os.Getenv("SORTABLE_DB"); env != "" {
		return env
	}
	return DefaultDBPath
}

// Environ returns the process environment as a map
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Load builds the configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Config file: path if non-empty, else $SORTABLE_CONFIG, else DefaultConfigPath
// 3. SORTABLE_* environment variables
//
// An explicit path must exist; the default location is optional.
func Load(path string, env map[string]string) (Config, error) {
	cfg := Default()

	mustExist := true
	if path == "" {
		path = env["SORTABLE_CONFIG"]
	}
	if path == "" {
		path = DefaultConfigPath
		mustExist = false
	}
	path = ExpandHome(path)

	fileCfg, loaded, err := loadFile(path, mustExist)
	if err != nil {
		return Config{}, err
	}
	if loaded {
		cfg = merge(cfg, fileCfg)
		cfg.Source = path
	}

	cfg, err = applyEnv(cfg, env)
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return cfg, true, nil
}

// Parse decodes a JSONC config document. Unset fields stay zero.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.DBPath != "" {
		base.DBPath = overlay.DBPath
	}
	if overlay.Addr != "" {
		base.Addr = overlay.Addr
	}
	if overlay.Token != "" {
		base.Token = overlay.Token
	}
	if overlay.PageSize != 0 {
		base.PageSize = overlay.PageSize
	}
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}
	if overlay.LogFormat != "" {
		base.LogFormat = overlay.LogFormat
	}
	if overlay.RateLimit != 0 {
		base.RateLimit = overlay.RateLimit
	}
	if overlay.RateBurst != 0 {
		base.RateBurst = overlay.RateBurst
	}
	return base
}

func applyEnv(cfg Config, env map[string]string) (Config, error) {
	if v := env["SORTABLE_DB"]; v != "" {
		cfg.DBPath = v
	}
	if v := env["SORTABLE_ADDR"]; v != "" {
		cfg.Addr = v
	}
	if v := env["SORTABLE_TOKEN"]; v != "" {
		cfg.Token = v
	}
	if v := env["SORTABLE_LOG_LEVEL"]; v != "" {
		cfg.LogLevel = v
	}
	if v := env["SORTABLE_PAGE_SIZE"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: SORTABLE_PAGE_SIZE must be an integer, got %q", ErrConfigInvalid, v)
		}
		cfg.PageSize = n
	}
	return cfg, nil
}

// Validate checks the merged configuration
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%w: db path is empty", ErrConfigInvalid)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrConfigInvalid, c.PageSize)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("%w: rate limits must not be negative", ErrConfigInvalid)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrConfigInvalid, c.LogFormat)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Template is the commented config written by WriteDefault
const Template = `// sortable configuration (JSON with comments).
// Environment variables (SORTABLE_DB, SORTABLE_ADDR, SORTABLE_TOKEN,
// SORTABLE_PAGE_SIZE, SORTABLE_LOG_LEVEL) override these values.
{
	// SQLite database holding every ranked scope
	"db": "` + DefaultDBPath + `",

	// HTTP listen address for "sortable-cli serve"
	"addr": "` + DefaultAddr + `",

	// Bearer token required by reorder endpoints; leave empty to disable
	// "token": "",

	"page_size": 100,
	"log_level": "info",
	"log_format": "text",

	// Write requests per second, and burst
	"rate_limit": 20,
	"rate_burst": 40,
}
`

// WriteDefault writes Template to path, replacing the file atomically.
// An existing file is kept unless force is set.
func WriteDefault(path string, force bool) error {
	path = ExpandHome(path)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(Template)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
