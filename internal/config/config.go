package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all lifeplan configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Solver     SolverConfig     `toml:"solver"`
	Cache      CacheConfig      `toml:"cache"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
	Costs      CostOverrides    `toml:"costs"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	PlanPath string `toml:"plan_path,omitempty"`
	Format   string `toml:"format"`
}

// SolverConfig tunes the target solver's bisection.
type SolverConfig struct {
	Iterations int     `toml:"iterations"`
	UpperBound float64 `toml:"upper_bound"`
}

// CacheConfig selects where solver answers are memoized.
type CacheConfig struct {
	Backend   string `toml:"backend"` // sqlite, redis, memory or none
	Path      string `toml:"path,omitempty"`
	RedisAddr string `toml:"redis_addr,omitempty"`
	TTLHours  int    `toml:"ttl_hours"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// Cache backend names.
const (
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Format: "text",
		},
		Solver: SolverConfig{
			Iterations: 20,
			UpperBound: 1_000_000,
		},
		Cache: CacheConfig{
			Backend:  CacheSQLite,
			TTLHours: 24 * 7,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lifeplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lifeplan")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "lifeplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "lifeplan")
}

// DefaultPlanPath is where setup writes a plan when no path is configured.
func DefaultPlanPath() string {
	return filepath.Join(ConfigDir(), "plan.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file at path over the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-chosen config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetRedisAddr returns the Redis address from env var or config, in that order.
func GetRedisAddr(cfg Config) string {
	if addr := os.Getenv("LIFEPLAN_REDIS_ADDR"); addr != "" {
		return addr
	}
	if cfg.Cache.RedisAddr != "" {
		return cfg.Cache.RedisAddr
	}
	return "localhost:6379"
}

// GetServerAddr returns the HTTP listen address from env var or config.
func GetServerAddr(cfg Config) string {
	if addr := os.Getenv("LIFEPLAN_ADDR"); addr != "" {
		return addr
	}
	return cfg.Server.Addr
}

// CachePath returns the SQLite cache file, defaulting under CacheDir.
func CachePath(cfg Config) string {
	if cfg.Cache.Path != "" {
		return cfg.Cache.Path
	}
	return filepath.Join(CacheDir(), "solver.db")
}

// Tables returns the default cost tables with the configured overrides applied.
func Tables(cfg Config) (CostTables, error) {
	return cfg.Costs.Apply(DefaultCostTables())
}

// LoadCostsFile reads a standalone TOML file of cost overrides. The file
// uses the same keys as the [costs] section, at the top level.
func LoadCostsFile(path string) (CostOverrides, error) {
	var o CostOverrides
	if _, err := toml.DecodeFile(path, &o); err != nil {
		return o, fmt.Errorf("parsing costs file: %w", err)
	}
	return o, nil
}
