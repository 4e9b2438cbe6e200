package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Moves      MovesConfig      `yaml:"moves"`
	Ordering   OrderingConfig   `yaml:"ordering"`
	Compaction CompactionConfig `yaml:"compaction"`
	Lock       LockConfig       `yaml:"lock"`
	Events     EventsConfig     `yaml:"events"`
	Log        LogConfig        `yaml:"log"`
}

// DatabaseConfig locates the SQLite file. Empty means ~/.lanes/lanes.db.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// MovesConfig holds move policy
type MovesConfig struct {
	CrossBoard  string        `yaml:"cross_board" validate:"oneof=same_board same_project any"`
	LockTimeout time.Duration `yaml:"lock_timeout" validate:"gt=0"`
}

// OrderingConfig holds position spacing
type OrderingConfig struct {
	Stride int64 `yaml:"stride" validate:"gte=2"`
	MinGap int64 `yaml:"min_gap" validate:"gte=1"`
}

// CompactionConfig drives the daemon sweeper
type CompactionConfig struct {
	Interval time.Duration `yaml:"interval" validate:"gt=0"`
}

// LockConfig selects the ordering lock backend
type LockConfig struct {
	Backend  string        `yaml:"backend" validate:"oneof=local redis"`
	RedisURL string        `yaml:"redis_url" validate:"required_if=Backend redis"`
	TTL      time.Duration `yaml:"ttl" validate:"gte=0"`
}

// EventsConfig configures activity fan-out. No NATS URL disables publishing.
type EventsConfig struct {
	NATSURL        string `yaml:"nats_url"`
	SubjectPrefix  string `yaml:"subject_prefix"`
	PublishRetries int    `yaml:"publish_retries" validate:"gte=1,lte=10"`
}

// LogConfig configures slog output and file rotation
type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"oneof=text json"`
	Output     string `yaml:"output" validate:"oneof=file stderr both"`
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAge     int    `yaml:"max_age" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads .env, then the config file (LANES_CONFIG or the XDG location),
// then LANES_* environment overrides. A missing file yields defaults.
func Load() (*Config, error) {
	// a missing .env is normal; the process environment is used as is
	_ = godotenv.Load()

	path := os.Getenv("LANES_CONFIG")
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return finish(Default())
		}
		path = p
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path and applies env overrides
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return finish(Default())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Fill in any missing values with defaults
	config.applyDefaults()
	return finish(&config)
}

func finish(c *Config) (*Config, error) {
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lanes", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "lanes", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Moves.CrossBoard == "" {
		c.Moves.CrossBoard = "same_board"
	}
	if c.Moves.LockTimeout == 0 {
		c.Moves.LockTimeout = 5 * time.Second
	}
	if c.Ordering.Stride == 0 {
		c.Ordering.Stride = 1024
	}
	if c.Ordering.MinGap == 0 {
		c.Ordering.MinGap = 2
	}
	if c.Compaction.Interval == 0 {
		c.Compaction.Interval = 10 * time.Minute
	}
	if c.Lock.Backend == "" {
		c.Lock.Backend = "local"
	}
	if c.Lock.TTL == 0 {
		c.Lock.TTL = 30 * time.Second
	}
	if c.Events.SubjectPrefix == "" {
		c.Events.SubjectPrefix = "lanes"
	}
	if c.Events.PublishRetries == 0 {
		c.Events.PublishRetries = 3
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Output == "" {
		c.Log.Output = "file"
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = 28
	}
}

// applyEnv overrides fields from LANES_* environment variables
func (c *Config) applyEnv() error {
	stringVars := map[string]*string{
		"LANES_DB_PATH":        &c.Database.Path,
		"LANES_CROSS_BOARD":    &c.Moves.CrossBoard,
		"LANES_LOCK_BACKEND":   &c.Lock.Backend,
		"LANES_REDIS_URL":      &c.Lock.RedisURL,
		"LANES_NATS_URL":       &c.Events.NATSURL,
		"LANES_SUBJECT_PREFIX": &c.Events.SubjectPrefix,
		"LANES_LOG_LEVEL":      &c.Log.Level,
		"LANES_LOG_OUTPUT":     &c.Log.Output,
		"LANES_LOG_FILE":       &c.Log.FilePath,
	}
	for key, field := range stringVars {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}

	durationVars := map[string]*time.Duration{
		"LANES_LOCK_TIMEOUT":        &c.Moves.LockTimeout,
		"LANES_COMPACTION_INTERVAL": &c.Compaction.Interval,
	}
	for key, field := range durationVars {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*field = d
	}

	if v := os.Getenv("LANES_MIN_GAP"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid LANES_MIN_GAP: %w", err)
		}
		c.Ordering.MinGap = n
	}
	return nil
}
