// Package config provides configuration loading and validation for the planner.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/wbl-planner/internal/llm"
)

// Config is the planner configuration. It can be loaded from a JSON or YAML file;
// environment variables override file values and defaults fill what is left.
type Config struct {
	Port int `json:"port,omitempty" yaml:"port,omitempty"` // HTTP listen port

	// Suggestions
	LLMProvider              string   `json:"llm_provider,omitempty" yaml:"llm_provider,omitempty"`   // gemini or openai
	LLMModel                 string   `json:"llm_model,omitempty" yaml:"llm_model,omitempty"`         // Overrides every model tier
	LLMBaseURL               string   `json:"llm_base_url,omitempty" yaml:"llm_base_url,omitempty"`   // OpenAI-compatible endpoint
	APIKey                   string   `json:"api_key,omitempty" yaml:"api_key,omitempty"`             // Provider API key
	SuggestionTimeout        Duration `json:"suggestion_timeout,omitempty" yaml:"suggestion_timeout,omitempty"`
	MaxConcurrentSuggestions int      `json:"max_concurrent_suggestions,omitempty" yaml:"max_concurrent_suggestions,omitempty"`

	// Sessions and rendering
	SessionTTL Duration `json:"session_ttl,omitempty" yaml:"session_ttl,omitempty"`
	PDFTimeout Duration `json:"pdf_timeout,omitempty" yaml:"pdf_timeout,omitempty"`
	ChromePath string   `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"` // Browser binary for PDF output

	LogMode string `json:"log_mode,omitempty" yaml:"log_mode,omitempty"` // development or production
}

// Defaults returns the configuration used for anything left unset.
func Defaults() Config {
	return Config{
		Port:                     8080,
		LLMProvider:              string(llm.ProviderGemini),
		SuggestionTimeout:        Duration(30 * time.Second),
		MaxConcurrentSuggestions: 4,
		SessionTTL:               Duration(24 * time.Hour),
		PDFTimeout:               Duration(30 * time.Second),
		LogMode:                  "production",
	}
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml are read
// as YAML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load reads the optional file at path, applies environment overrides from getenv,
// fills defaults and validates the result.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *fileCfg
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	cfg = cfg.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. The API key comes from
// LLM_API_KEY, falling back to GEMINI_API_KEY.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	setString(&c.LLMProvider, "LLM_PROVIDER")
	setString(&c.LLMModel, "LLM_MODEL")
	setString(&c.LLMBaseURL, "LLM_BASE_URL")
	setString(&c.APIKey, "LLM_API_KEY", "GEMINI_API_KEY")
	setString(&c.ChromePath, "CHROME_PATH")
	setString(&c.LogMode, "LOG_MODE")

	for key, dst := range map[string]*int{
		"PORT":                       &c.Port,
		"MAX_CONCURRENT_SUGGESTIONS": &c.MaxConcurrentSuggestions,
	} {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config error: %s must be an integer: %w", key, err)
			}
			*dst = n
		}
	}

	for key, dst := range map[string]*Duration{
		"SUGGESTION_TIMEOUT": &c.SuggestionTimeout,
		"SESSION_TTL":        &c.SessionTTL,
		"PDF_TIMEOUT":        &c.PDFTimeout,
	} {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("config error: %s must be a duration: %w", key, err)
			}
			*dst = Duration(d)
		}
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if !llm.Provider(c.LLMProvider).Valid() {
		return fmt.Errorf("config error: unknown llm_provider %q", c.LLMProvider)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.MaxConcurrentSuggestions <= 0 {
		return fmt.Errorf("config error: 'max_concurrent_suggestions' must be positive")
	}
	for name, d := range map[string]Duration{
		"suggestion_timeout": c.SuggestionTimeout,
		"session_ttl":        c.SessionTTL,
		"pdf_timeout":        c.PDFTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("config error: '%s' must be positive", name)
		}
	}
	switch c.LogMode {
	case "development", "production":
	default:
		return fmt.Errorf("config error: unknown log_mode %q", c.LogMode)
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// Negative values are kept so Validate can reject them.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.LLMModel == "" {
		result.LLMModel = defaults.LLMModel
	}
	if result.LLMBaseURL == "" {
		result.LLMBaseURL = defaults.LLMBaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxConcurrentSuggestions == 0 {
		result.MaxConcurrentSuggestions = defaults.MaxConcurrentSuggestions
	}
	if result.SuggestionTimeout == 0 {
		result.SuggestionTimeout = defaults.SuggestionTimeout
	}
	if result.SessionTTL == 0 {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.PDFTimeout == 0 {
		result.PDFTimeout = defaults.PDFTimeout
	}

	return result
}

// LLMConfig builds the provider configuration: the provider's defaults with the
// model and base URL overrides applied.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigFor(llm.Provider(c.LLMProvider))
	if c.LLMModel != "" {
		cfg = cfg.WithAllModels(c.LLMModel)
	}
	if c.LLMBaseURL != "" {
		cfg.BaseURL = c.LLMBaseURL
	}
	return cfg
}

// SuggestionsEnabled reports whether an API key is configured.
func (c *Config) SuggestionsEnabled() bool {
	return c.APIKey != ""
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "[REDACTED]"
	}
	return c
}
