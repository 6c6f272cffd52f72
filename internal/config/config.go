package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// OllamaConfig holds the generation model settings. Environment
// variables override the file values (OLLAMA_MODEL,
// OLLAMA_TEMPERATURE, OLLAMA_MAX_TOKENS), matching the generator's
// original knobs.
type OllamaConfig struct {
	Model       string `yaml:"model"`
	Temperature string `yaml:"temperature"`
	MaxTokens   int    `yaml:"max_tokens,omitempty"`
	NumCtx      int    `yaml:"num_ctx,omitempty"`
}

type Config struct {
	// OutputsDir is where generated record files live.
	OutputsDir string `yaml:"outputs_dir"`
	// StateDir holds the generator's topic cursor.
	StateDir string `yaml:"state_dir"`
	// BaseURL, when set, makes the viewer fetch records over HTTP
	// instead of reading OutputsDir directly.
	BaseURL string `yaml:"base_url,omitempty"`
	// Listen is the serve command's bind address.
	Listen string `yaml:"listen"`
	// GenerateEndpoint overrides the URL the TUI posts to when asked
	// to regenerate; derived from Listen when empty.
	GenerateEndpoint string `yaml:"generate_endpoint,omitempty"`

	Ollama OllamaConfig `yaml:"ollama"`
}

func (c *Config) ResolvedModel() string {
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		return v
	}
	if c.Ollama.Model == "" {
		return "mistral"
	}
	return c.Ollama.Model
}

func (c *Config) ResolvedTemperature() string {
	if v := os.Getenv("OLLAMA_TEMPERATURE"); v != "" {
		return v
	}
	if c.Ollama.Temperature == "" {
		return "0.2"
	}
	return c.Ollama.Temperature
}

func (c *Config) ResolvedMaxTokens() int {
	if v := os.Getenv("OLLAMA_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return c.Ollama.MaxTokens
}

func (c *Config) ResolvedOutputsDir() string {
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		return v
	}
	if c.OutputsDir == "" {
		return "outputs"
	}
	return c.OutputsDir
}

func (c *Config) ResolvedStateDir() string {
	if v := os.Getenv("STATE_DIR"); v != "" {
		return v
	}
	if c.StateDir == "" {
		return "state"
	}
	return c.StateDir
}

// Endpoint returns the regenerate URL the TUI should POST to.
func (c *Config) Endpoint() string {
	if c.GenerateEndpoint != "" {
		return c.GenerateEndpoint
	}
	host := c.Listen
	if host == "" {
		host = "127.0.0.1:8377"
	}
	if strings.HasPrefix(host, ":") {
		host = "127.0.0.1" + host
	}
	return "http://" + host + "/api/generate"
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "explaindeck", "config.yaml")
}

func StorePath() string {
	return filepath.Join(xdg.CacheHome, "explaindeck", "explaindeck.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	for name, raw := range map[string]string{
		"base_url":          cfg.BaseURL,
		"generate_endpoint": cfg.GenerateEndpoint,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s scheme must be http or https, got %q", name, u.Scheme)
		}
	}

	// Model names are passed to `ollama run` as a single argument.
	if m := cfg.Ollama.Model; strings.ContainsAny(m, " \t\n") {
		return fmt.Errorf("invalid ollama model name %q", m)
	}
	return nil
}
