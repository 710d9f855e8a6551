package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	AI        AIConfig        `yaml:"ai"`
	Cache     CacheConfig     `yaml:"cache"`
	Engine    EngineConfig    `yaml:"engine"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" env:"SERVER_ADDR"` // HTTP listen address, e.g. ":8080"
}

type AIConfig struct {
	BaseURL          string `yaml:"base_url" env:"AI_BASE_URL"`
	APIKeyEnv        string `yaml:"api_key_env"` // env var holding the API key, e.g. "OPENAI_API_KEY"
	Model            string `yaml:"model" env:"AI_MODEL"`
	TimeoutSeconds   int    `yaml:"timeout_seconds" env:"AI_TIMEOUT_SECONDS"`
	MaxResponseBytes int64  `yaml:"max_response_bytes"`
}

type CacheConfig struct {
	RedisAddr  string `yaml:"redis_addr" env:"REDIS_ADDR"` // empty = in-memory cache
	TTLSeconds int    `yaml:"ttl_seconds" env:"CACHE_TTL_SECONDS"`
}

type EngineConfig struct {
	// AdmissionThreshold is the minimum match score for a lender to appear
	// in allocation results. Strictly greater-than comparison.
	AdmissionThreshold float64 `yaml:"admission_threshold" env:"ADMISSION_THRESHOLD"`
}

type RateLimitConfig struct {
	Requests      int `yaml:"requests" env:"RATE_LIMIT_REQUESTS"`
	WindowSeconds int `yaml:"window_seconds" env:"RATE_LIMIT_WINDOW_SECONDS"`
}

// Load reads configuration from a YAML file, then applies environment
// variable overrides. If the file doesn't exist, it starts from defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(cfg)

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config env overrides: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		AI: AIConfig{
			BaseURL:          "https://api.openai.com/v1",
			APIKeyEnv:        "OPENAI_API_KEY",
			Model:            "gpt-4o-mini",
			TimeoutSeconds:   30,
			MaxResponseBytes: 1 << 20,
		},
		Cache:     CacheConfig{TTLSeconds: 300},
		Engine:    EngineConfig{AdmissionThreshold: 0.5},
		RateLimit: RateLimitConfig{Requests: 5, WindowSeconds: 60},
	}
}

// applyDefaults fills in zero values left by a partial YAML file.
func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = def.AI.BaseURL
	}
	if cfg.AI.APIKeyEnv == "" {
		cfg.AI.APIKeyEnv = def.AI.APIKeyEnv
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = def.AI.Model
	}
	if cfg.AI.TimeoutSeconds <= 0 {
		cfg.AI.TimeoutSeconds = def.AI.TimeoutSeconds
	}
	if cfg.AI.MaxResponseBytes <= 0 {
		cfg.AI.MaxResponseBytes = def.AI.MaxResponseBytes
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = def.Cache.TTLSeconds
	}
	if cfg.Engine.AdmissionThreshold == 0 {
		cfg.Engine.AdmissionThreshold = def.Engine.AdmissionThreshold
	}
	if cfg.RateLimit.Requests <= 0 {
		cfg.RateLimit.Requests = def.RateLimit.Requests
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		cfg.RateLimit.WindowSeconds = def.RateLimit.WindowSeconds
	}
}

func validate(cfg *Config) error {
	if cfg.Engine.AdmissionThreshold <= 0 || cfg.Engine.AdmissionThreshold >= 1 {
		return fmt.Errorf("admission_threshold must be in (0,1), got %v", cfg.Engine.AdmissionThreshold)
	}
	return nil
}
