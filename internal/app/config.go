// Package app loads the configuration and wires the retention run.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bnema/registry-cli/internal/adapters/out/registryapi"
	"github.com/bnema/registry-cli/internal/adapters/out/report"
	"github.com/bnema/registry-cli/internal/domain"
	"github.com/bnema/registry-cli/internal/logging"
	"github.com/bnema/registry-cli/internal/usecase/retention"
)

// Config is the fully resolved run configuration.
type Config struct {
	Registry           string   `mapstructure:"registry"`
	Login              string   `mapstructure:"login"`
	Image              string   `mapstructure:"image"`
	ImagesLike         []string `mapstructure:"images_like"`
	TagsLike           []string `mapstructure:"tags_like"`
	Keep               int      `mapstructure:"keep"`
	Delete             bool     `mapstructure:"delete"`
	DryRun             bool     `mapstructure:"dry_run"`
	ProtectKeptDigests bool     `mapstructure:"protect_kept_digests"`
	DigestMethod       string   `mapstructure:"digest_method"`
	Output             string   `mapstructure:"output"`

	HTTP    HTTPConfig    `mapstructure:"http"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// HTTPConfig tunes registry requests.
type HTTPConfig struct {
	// RPS caps requests per second; 0 disables throttling.
	RPS     float64       `mapstructure:"rps"`
	Burst   int           `mapstructure:"burst"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string            `mapstructure:"level"`
	Format string            `mapstructure:"format"`
	File   LoggingFileConfig `mapstructure:"file"`
}

type LoggingFileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"registry":             "registry",
	"login":                "login",
	"image":                "image",
	"images-like":          "images_like",
	"tags-like":            "tags_like",
	"num":                  "keep",
	"delete":               "delete",
	"dry-run":              "dry_run",
	"protect-kept-digests": "protect_kept_digests",
	"digest-method":        "digest_method",
	"output":               "output",
	"timeout":              "http.timeout",
	"rps":                  "http.rps",
	"log-level":            "logging.level",
	"log-format":           "logging.format",
	"log-file":             "logging.file.path",
}

// LoadConfig reads defaults, the config file, REGISTRY_CLI_* environment
// variables and, when flags is not nil, explicitly set flags, in increasing
// order of precedence. A missing config file is not an error unless
// configPath names it.
func LoadConfig(configPath string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)
	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("%w: failed to read config file: %w", domain.ErrInvalidConfig, err)
		}
	}

	v.SetEnvPrefix("REGISTRY_CLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flagName, key := range flagKeys {
			f := flags.Lookup(flagName)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
			}
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToSingletonSliceHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// stringToSingletonSliceHook turns a scalar string into a one-element slice.
// Patterns are regular expressions, so a comma is never a separator.
func stringToSingletonSliceHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		if s == "" {
			return []string{}, nil
		}
		return []string{s}, nil
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("registry", "")
	v.SetDefault("login", "")
	v.SetDefault("image", "")
	v.SetDefault("images_like", []string{})
	v.SetDefault("tags_like", []string{})
	v.SetDefault("keep", 10)
	v.SetDefault("delete", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("protect_kept_digests", false)
	v.SetDefault("digest_method", string(registryapi.DigestMethodHead))
	v.SetDefault("output", string(report.FormatText))
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.rps", 0)
	v.SetDefault("http.burst", 1)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("logging.file.compress", false)
}

// ConfigureViper sets the config file, or the search paths for
// registry-cli.yaml: the working directory, $XDG_CONFIG_HOME/registry-cli
// (or ~/.config/registry-cli) and /etc/registry-cli.
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("registry-cli")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := userConfigDir(); dir != "" {
		v.AddConfigPath(filepath.Join(dir, "registry-cli"))
	}
	v.AddConfigPath("/etc/registry-cli")
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return ""
}

// Validate checks the configuration without touching the network.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Registry) == "" {
		return fmt.Errorf("%w: registry is required", domain.ErrInvalidConfig)
	}
	if _, err := registryapi.ParseEndpoint(c.Registry); err != nil {
		return err
	}
	if c.Keep < 0 {
		return fmt.Errorf("%w: got %d", domain.ErrNegativeRetention, c.Keep)
	}
	if c.Login != "" {
		if _, err := registryapi.ParseLogin(c.Login); err != nil {
			return err
		}
	}
	if _, err := registryapi.ParseDigestMethod(c.DigestMethod); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Output); err != nil {
		return err
	}
	if c.Image != "" {
		if err := registryapi.ValidateRepository(c.Image); err != nil {
			return err
		}
	}
	if _, err := retention.NewTagFilter(c.ImagesLike); err != nil {
		return fmt.Errorf("images-like: %w", err)
	}
	if _, err := retention.NewTagFilter(c.TagsLike); err != nil {
		return fmt.Errorf("tags-like: %w", err)
	}
	if c.HTTP.RPS < 0 {
		return fmt.Errorf("%w: rps must not be negative", domain.ErrInvalidConfig)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

// Mode returns the run mode selected by the delete and dry-run switches.
func (c Config) Mode() domain.RunMode {
	return domain.ResolveRunMode(c.Delete, c.DryRun)
}

func (c Config) retentionConfig() retention.Config {
	return retention.Config{
		Registry:           c.Registry,
		Repository:         c.Image,
		RepositoryPatterns: c.ImagesLike,
		TagPatterns:        c.TagsLike,
		Keep:               c.Keep,
		Mode:               c.Mode(),
		ProtectKeptDigests: c.ProtectKeptDigests,
	}
}

func (c Config) loggingConfig() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		File: logging.FileConfig{
			Enabled:    c.Logging.File.Enabled || c.Logging.File.Path != "",
			Path:       c.Logging.File.Path,
			MaxSize:    c.Logging.File.MaxSize,
			MaxBackups: c.Logging.File.MaxBackups,
			MaxAge:     c.Logging.File.MaxAge,
			Compress:   c.Logging.File.Compress,
		},
	}
}
