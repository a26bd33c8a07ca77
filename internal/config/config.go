package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/finmate/internal/common"
	"github.com/Veraticus/finmate/internal/llm"
)

// Defaults.
const (
	DefaultAddr          = ":8080"
	DefaultStoragePath   = "~/.local/share/finmate/finmate.db"
	DefaultMongoDatabase = "finmate"
	DefaultCacheTTL      = 15 * time.Minute
)

// Config is the complete application configuration.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LLMConfig configures the generative-language client.
type LLMConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	ProjectID      string        `mapstructure:"project_id"`
	Model          string        `mapstructure:"model"`
	BaseURL        string        `mapstructure:"base_url"`
	FallbackModels []string      `mapstructure:"fallback_models"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	RateLimit      int           `mapstructure:"rate_limit"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	Temperature    float64       `mapstructure:"temperature"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig selects the profile store.
type StorageConfig struct {
	Driver        string `mapstructure:"driver"`
	Path          string `mapstructure:"path"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

// LoggingConfig configures the default slog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings maps config keys to the environment variables that set them,
// in priority order.
var envBindings = map[string][]string{
	"llm.api_key":            {"FINMATE_LLM_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"},
	"llm.project_id":         {"FINMATE_LLM_PROJECT_ID", "GOOGLE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"},
	"llm.model":              {"FINMATE_LLM_MODEL", "PARSE_FIELDS_MODEL"},
	"llm.fallback_models":    {"FINMATE_LLM_FALLBACK_MODELS", "PARSE_FIELDS_MODEL_FALLBACKS"},
	"server.port":            {"PORT"},
	"storage.mongo_uri":      {"FINMATE_STORAGE_MONGO_URI", "MONGO_URI"},
	"storage.mongo_database": {"FINMATE_STORAGE_MONGO_DATABASE", "MONGO_DATABASE"},
}

// New returns a viper instance with defaults and environment bindings set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("llm.model", llm.DefaultModel)
	v.SetDefault("llm.base_url", llm.DefaultBaseURL)
	v.SetDefault("llm.max_tokens", llm.DefaultMaxTokens)
	v.SetDefault("llm.cache_ttl", DefaultCacheTTL)
	v.SetDefault("llm.rate_limit", 0)
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", DefaultStoragePath)
	v.SetDefault("storage.mongo_database", DefaultMongoDatabase)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("FINMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	return v
}

// Load reads .env files, then the config file (cfgFile, or config.yaml in the
// standard locations when empty), and decodes the result. A missing default
// config file is not an error.
func Load(v *viper.Viper, cfgFile string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		path, err := ExpandPath(cfgFile)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "finmate"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.LLM.FallbackModels = splitList(cfg.LLM.FallbackModels)
	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)
	storagePath, err := ExpandPath(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	cfg.Storage.Path = storagePath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv loads environment files that exist. Variables already set in the
// environment are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Validate checks values that cannot be fixed up with a default. Missing LLM
// credentials are reported per request instead.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "mongo":
	default:
		return fmt.Errorf("%w: unknown storage driver %q", common.ErrInvalidConfig, c.Storage.Driver)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	if c.LLM.RateLimit < 0 {
		return fmt.Errorf("%w: llm.rate_limit cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}

// ClientConfig converts the LLM section into the client's configuration.
func (c LLMConfig) ClientConfig() llm.Config {
	return llm.Config{
		APIKey:         c.APIKey,
		ProjectID:      c.ProjectID,
		BaseURL:        c.BaseURL,
		Model:          c.Model,
		FallbackModels: c.FallbackModels,
		CacheTTL:       c.CacheTTL,
		RateLimit:      c.RateLimit,
		Temperature:    c.Temperature,
		MaxTokens:      c.MaxTokens,
	}
}

// ListenAddr returns the address to serve on. PORT, when set, wins over addr.
func (s ServerConfig) ListenAddr() string {
	if s.Port != "" {
		return ":" + s.Port
	}
	if s.Addr == "" {
		return DefaultAddr
	}
	return s.Addr
}

// splitList trims entries, splits any that still hold commas and drops blanks.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
