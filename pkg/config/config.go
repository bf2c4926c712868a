package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment variables read by Load.
const EnvPrefix = "UNCENSORED"

// DefaultCheckTimeout bounds each prompt issued by the check command.
const DefaultCheckTimeout = 60 * time.Second

// Config holds all runtime configuration for the chat client.
type Config struct {
	// Binary is the external model-serving executable.
	Binary string
	// ModelDir is exported to the binary as OLLAMA_MODELS.
	ModelDir string
	// Timeout bounds a single chat turn. Zero means wait forever.
	Timeout      time.Duration
	CheckTimeout time.Duration
	// ModelsFile optionally replaces the built-in model registry.
	ModelsFile string
	Markdown   bool
	Verbose    bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Binary:       "ollama",
		ModelDir:     filepath.Join(home, "llm-models"),
		Timeout:      0,
		CheckTimeout: DefaultCheckTimeout,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	defaults := DefaultConfig()
	cfg.Binary = strings.TrimSpace(cfg.Binary)
	cfg.ModelDir = strings.TrimSpace(cfg.ModelDir)
	cfg.ModelsFile = strings.TrimSpace(cfg.ModelsFile)

	if cfg.Binary == "" {
		cfg.Binary = defaults.Binary
	}
	if cfg.ModelDir == "" {
		cfg.ModelDir = defaults.ModelDir
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = defaults.CheckTimeout
	}
	return cfg
}

// Load reads an optional .env file and the process environment on top of
// DefaultConfig.
func Load() (Config, error) {
	_ = godotenv.Load()

	defaults := DefaultConfig()
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("binary", defaults.Binary)
	v.SetDefault("model_dir", defaults.ModelDir)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("check_timeout", defaults.CheckTimeout)
	v.SetDefault("models_file", "")
	v.SetDefault("markdown", false)
	v.SetDefault("verbose", false)

	// An explicit UNCENSORED_MODEL_DIR wins over an inherited OLLAMA_MODELS.
	if err := v.BindEnv("model_dir", EnvPrefix+"_MODEL_DIR", "OLLAMA_MODELS"); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Binary:       v.GetString("binary"),
		ModelDir:     v.GetString("model_dir"),
		Timeout:      v.GetDuration("timeout"),
		CheckTimeout: v.GetDuration("check_timeout"),
		ModelsFile:   v.GetString("models_file"),
		Markdown:     v.GetBool("markdown"),
		Verbose:      v.GetBool("verbose"),
	}
	return Normalize(cfg), nil
}
