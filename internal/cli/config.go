package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Environment variables that override the config file.
const (
	envCache     = "WORDCLOUD_CACHE"
	envRedisAddr = "WORDCLOUD_REDIS_ADDR"
)

const configFileName = "config.toml"

// Config holds user defaults read from config.toml. Zero fields leave the
// pipeline defaults in place; command-line flags always win.
type Config struct {
	Width   float64     `toml:"width,omitempty"`
	Height  float64     `toml:"height,omitempty"`
	Style   string      `toml:"style,omitempty"`
	Formats []string    `toml:"formats,omitempty"`
	Cache   CacheConfig `toml:"cache"`
	Serve   ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db,omitempty"`
}

// ServeConfig holds defaults for the serve command.
type ServeConfig struct {
	Addr    string `toml:"addr,omitempty"`
	LogFile string `toml:"log_file,omitempty"`
}

// DefaultConfig returns the config used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{Backend: CacheFile, RedisAddr: "localhost:6379"},
		Serve: ServeConfig{Addr: ":8080"},
	}
}

// configPath returns the default config file location.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func displayConfigPath() string {
	if p, err := configPath(); err == nil {
		return p
	}
	return filepath.Join("~", ".config", appName, configFileName)
}

// ReadConfig decodes a config file over the defaults. Unknown keys are an
// error so typos do not pass silently.
func ReadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

// Validate checks backend, style and format names.
func (cfg Config) Validate() error {
	switch cfg.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be file, redis or none)", cfg.Cache.Backend)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must not be negative")
	}
	if cfg.Style != "" {
		if err := pipeline.ValidateStyle(cfg.Style); err != nil {
			return err
		}
	}
	return pipeline.ValidateFormats(cfg.Formats)
}

// applyEnv overrides config values from the environment.
func (cfg *Config) applyEnv() {
	if v := os.Getenv(envCache); v != "" {
		cfg.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(envRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
}

// loadConfig reads the config file into c.Config. A missing file at the
// default location is fine; a missing explicit --config is not.
func (c *CLI) loadConfig(path string) error {
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			c.Config = DefaultConfig()
			c.Config.applyEnv()
			return c.Config.Validate()
		}
		path = p
	}

	cfg := DefaultConfig()
	if _, err := os.Stat(path); err == nil || explicit {
		loaded, err := ReadConfig(path)
		if err != nil {
			return err
		}
		c.Logger.Debug("loaded config", "path", path)
		cfg = loaded
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// applyConfig fills options from the config wherever the matching flag was
// not set on the command line.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if !flags.Changed("width") && c.Config.Width > 0 {
		opts.Width = c.Config.Width
	}
	if !flags.Changed("height") && c.Config.Height > 0 {
		opts.Height = c.Config.Height
	}
	if flags.Lookup("style") != nil && !flags.Changed("style") && c.Config.Style != "" {
		opts.Style = c.Config.Style
	}
	if flags.Lookup("format") != nil && !flags.Changed("format") && len(c.Config.Formats) > 0 {
		opts.Formats = c.Config.Formats
	}
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Fprintln(c.Out, p)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(c.Out).Encode(c.Config)
		},
	})

	return cmd
}
