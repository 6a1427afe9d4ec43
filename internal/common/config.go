package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Claude      ClaudeConfig    `toml:"claude"`
	LLM         LLMConfig       `toml:"llm"`
	Assistant   AssistantConfig `toml:"assistant"`
	Sessions    SessionsConfig  `toml:"sessions"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Output []string `toml:"output"` // "stdout", "file"
}

// GeminiConfig holds Gemini provider settings
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
}

// ClaudeConfig holds Anthropic Claude provider settings
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// LLMConfig selects the default provider and bounds outbound call rate
type LLMConfig struct {
	DefaultProvider string  `toml:"default_provider" validate:"oneof=gemini claude"`
	RequestsPerMin  float64 `toml:"requests_per_min" validate:"gt=0"`
	Burst           int     `toml:"burst" validate:"gt=0"`
}

// AssistantConfig tunes the document pipeline
type AssistantConfig struct {
	// MaxPromptChars bounds how much document text is sent to the model.
	// The leading portion of a research document carries the most
	// summarizable content.
	MaxPromptChars int `toml:"max_prompt_chars" validate:"gt=0"`

	// SnippetStrategy selects evidence location: "sentence" or "window".
	SnippetStrategy string `toml:"snippet_strategy" validate:"oneof=sentence window"`

	// SnippetWindow is the character window for the window strategy.
	SnippetWindow int `toml:"snippet_window" validate:"gt=0"`

	// ChallengeMode selects question generation: "model" delegates to one
	// LLM call, "local" samples document sentences.
	ChallengeMode string `toml:"challenge_mode" validate:"oneof=model local"`

	// ChallengeCount is the number of questions per generation.
	ChallengeCount int `toml:"challenge_count" validate:"gt=0"`
}

// SessionsConfig controls session lifecycle
type SessionsConfig struct {
	// IdleTTL is how long an untouched session survives before pruning.
	IdleTTL time.Duration `toml:"idle_ttl" validate:"gt=0"`

	// PruneSchedule is a cron expression for the pruning job.
	PruneSchedule string `toml:"prune_schedule" validate:"required"`

	// MaxUploadBytes bounds accepted upload size.
	MaxUploadBytes int64 `toml:"max_upload_bytes" validate:"gt=0"`
}

// NewDefaultConfig returns a Config populated with defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/scholarly",
				ResetOnStartup: false,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.4,
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			Temperature: 0.4,
			MaxTokens:   1024,
		},
		LLM: LLMConfig{
			DefaultProvider: "gemini",
			RequestsPerMin:  30,
			Burst:           5,
		},
		Assistant: AssistantConfig{
			MaxPromptChars:  3000,
			SnippetStrategy: "sentence",
			SnippetWindow:   250,
			ChallengeMode:   "model",
			ChallengeCount:  3,
		},
		Sessions: SessionsConfig{
			IdleTTL:        2 * time.Hour,
			PruneSchedule:  "*/10 * * * *",
			MaxUploadBytes: 20 * 1024 * 1024,
		},
	}
}

// LoadFromFiles loads configuration starting from defaults, applying each
// TOML file in order (later files override earlier ones), then environment
// variables. The result is validated before being returned.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies SCHOLARLY_* environment variables on top of the
// file configuration.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SCHOLARLY_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("SCHOLARLY_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SCHOLARLY_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if path := os.Getenv("SCHOLARLY_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
	if level := os.Getenv("SCHOLARLY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if provider := os.Getenv("SCHOLARLY_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = provider
	}
	if mode := os.Getenv("SCHOLARLY_CHALLENGE_MODE"); mode != "" {
		config.Assistant.ChallengeMode = mode
	}
}

// ApplyFlagOverrides applies command-line flag values (highest priority).
// Zero values leave the config untouched.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks structural constraints on the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
