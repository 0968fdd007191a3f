package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AIConfig struct {
	GeminiKey       string        `yaml:"gemini_key"`
	GeminiURL       string        `yaml:"gemini_url"`
	OpenAIKey       string        `yaml:"openai_key"`
	TextModel       string        `yaml:"text_model"`
	ImageModel      string        `yaml:"image_model"`
	TTSModel        string        `yaml:"tts_model"`
	Voice           string        `yaml:"voice"`
	ConcurrentLimit int           `yaml:"concurrent_limit"` // max concurrent AI calls
	CallTimeout     time.Duration `yaml:"call_timeout"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	AI       AIConfig       `yaml:"ai"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.TextModel == "" {
		cfg.AI.TextModel = "gemini-2.5-flash"
	}
	if cfg.AI.ImageModel == "" {
		cfg.AI.ImageModel = "gemini-2.5-flash-image"
	}
	if cfg.AI.TTSModel == "" {
		cfg.AI.TTSModel = "gemini-2.5-flash-preview-tts"
	}
	if cfg.AI.Voice == "" {
		cfg.AI.Voice = "Kore"
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 16
	}
	if cfg.AI.CallTimeout <= 0 {
		cfg.AI.CallTimeout = 60 * time.Second
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.AI.GeminiKey == "" && cfg.AI.OpenAIKey == "" && !dev {
		return nil, errors.New("one of ai.gemini_key or ai.openai_key is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
