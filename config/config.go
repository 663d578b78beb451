package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to every environment override, e.g. RESUMEBOX_RENDERER_URL.
const EnvPrefix = "RESUMEBOX"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Renderer  RendererConfig  `mapstructure:"renderer"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	HTTPPort  int    `mapstructure:"http_port"`
}

// WorkspaceConfig holds the sandboxed output directory settings
type WorkspaceConfig struct {
	RootDir     string `mapstructure:"root_dir"`
	ArtifactExt string `mapstructure:"artifact_ext"`
	DefaultStem string `mapstructure:"default_stem"`
}

// RendererConfig holds settings for the remote rendering service
type RendererConfig struct {
	URL               string `mapstructure:"url"`
	APIKey            string `mapstructure:"api_key"`
	TimeoutSec        int    `mapstructure:"timeout_sec"`
	MaxArtifactSizeMB int    `mapstructure:"max_artifact_size_mb"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// Options controls where configuration is read from. The zero value reads
// config.yaml from the working directory or ./config, if present.
type Options struct {
	// File is an explicit config file path. When set it must exist.
	File string
	// Flags are bound on top of file and environment values.
	Flags *pflag.FlagSet
}

// flagBindings maps command line flag names to configuration keys.
var flagBindings = map[string]string{
	"transport": "server.transport",
	"http-port": "server.http_port",
	"root-dir":  "workspace.root_dir",
}

// New loads and validates the application configuration
func New(opts Options) (*Config, error) {
	v := viper.New()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagBindings {
			if flag := opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// If config file not found, continue with defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.http_port", 8080)

	v.SetDefault("workspace.root_dir", "resumes")
	v.SetDefault("workspace.artifact_ext", "pdf")
	v.SetDefault("workspace.default_stem", "resume")

	v.SetDefault("renderer.url", "http://localhost:3000/api/render")
	v.SetDefault("renderer.api_key", "")
	v.SetDefault("renderer.timeout_sec", 60)
	v.SetDefault("renderer.max_artifact_size_mb", 20)

	v.SetDefault("logging.mode", "production")
	v.SetDefault("logging.level", "info")
}

// validate ensures the configuration is valid
func (c *Config) validate() error {
	if c.Server.Transport != "stdio" && c.Server.Transport != "http" {
		return fmt.Errorf("invalid server.transport: %s, must be 'stdio' or 'http'", c.Server.Transport)
	}

	if c.Server.Transport == "http" && (c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535) {
		return fmt.Errorf("invalid server.http_port: %d", c.Server.HTTPPort)
	}

	if strings.TrimSpace(c.Workspace.RootDir) == "" {
		return errors.New("workspace.root_dir must not be empty")
	}

	ext := strings.TrimPrefix(c.Workspace.ArtifactExt, ".")
	if ext == "" || strings.ContainsAny(ext, `/\.`) {
		return fmt.Errorf("invalid workspace.artifact_ext: %q", c.Workspace.ArtifactExt)
	}

	if strings.TrimSpace(c.Workspace.DefaultStem) == "" {
		return errors.New("workspace.default_stem must not be empty")
	}

	u, err := url.Parse(c.Renderer.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid renderer.url: %q, must be an absolute http(s) URL", c.Renderer.URL)
	}

	if c.Renderer.TimeoutSec <= 0 {
		return fmt.Errorf("renderer.timeout_sec must be positive, got: %d", c.Renderer.TimeoutSec)
	}

	if c.Renderer.MaxArtifactSizeMB <= 0 {
		return fmt.Errorf("renderer.max_artifact_size_mb must be positive, got: %d", c.Renderer.MaxArtifactSizeMB)
	}

	if c.Logging.Mode != "production" && c.Logging.Mode != "development" {
		return fmt.Errorf("invalid logging.mode: %s, must be 'production' or 'development'", c.Logging.Mode)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	return nil
}

// GetTimeout returns the renderer request timeout as a duration
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Renderer.TimeoutSec) * time.Second
}

// MaxArtifactBytes returns the largest rendered artifact accepted from the renderer
func (c *Config) MaxArtifactBytes() int64 {
	return int64(c.Renderer.MaxArtifactSizeMB) * 1024 * 1024
}
