package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Cache    CacheConfig    `yaml:"cache"`
	Retry    RetryConfig    `yaml:"retry"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Summary  SummaryConfig  `yaml:"summary"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Input  string `yaml:"input"` // watch-mode drop folder, optional
}

type CacheConfig struct {
	Dir        string `yaml:"dir"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type RetryConfig struct {
	MaxRetries       int     `yaml:"max_retries"`
	BaseDelaySeconds float64 `yaml:"base_delay_seconds"`
	MaxDelaySeconds  float64 `yaml:"max_delay_seconds"`
}

type ChunkingConfig struct {
	ChunkSizeRatio    float64 `yaml:"chunk_size_ratio"`
	ChunkOverlapRatio float64 `yaml:"chunk_overlap_ratio"`
	ReservedTokens    int     `yaml:"reserved_tokens"`
}

// Temperature and AdaptiveDelayMinSecs are pointers because zero is a
// meaningful setting for both; nil means "not set, use the default".
type SummaryConfig struct {
	DefaultModel         string   `yaml:"default_model"`
	DefaultDepth         string   `yaml:"default_depth"`
	MaxTokensPerChunk    int      `yaml:"max_tokens_per_chunk"`
	MaxTokensFinal       int      `yaml:"max_tokens_final"`
	Temperature          *float64 `yaml:"temperature"`
	TimeoutSeconds       int      `yaml:"timeout_seconds"`
	AdaptiveDelayMinSecs *int     `yaml:"adaptive_delay_min"`
	AdaptiveDelayMaxSecs int      `yaml:"adaptive_delay_max"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

type OutputConfig struct {
	WindowsSafeNames bool `yaml:"windows_safe_names"`
	ExportDocx       bool `yaml:"export_docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Chunking.ChunkSizeRatio < 0 || c.Chunking.ChunkSizeRatio > 1 {
		return fmt.Errorf("chunking.chunk_size_ratio must be between 0 and 1")
	}
	if c.Chunking.ChunkOverlapRatio < 0 || c.Chunking.ChunkOverlapRatio > 1 {
		return fmt.Errorf("chunking.chunk_overlap_ratio must be between 0 and 1")
	}

	if c.Cache.Dir == "" {
		c.Cache.Dir = "cache"
	}
	if c.Cache.MaxAgeDays == 0 {
		c.Cache.MaxAgeDays = 30
	}
	if c.Retry.MaxRetries == 0 {
		c.Retry.MaxRetries = 4
	}
	if c.Retry.BaseDelaySeconds == 0 {
		c.Retry.BaseDelaySeconds = 10
	}
	if c.Retry.MaxDelaySeconds == 0 {
		c.Retry.MaxDelaySeconds = 60
	}
	if c.Chunking.ChunkSizeRatio == 0 {
		c.Chunking.ChunkSizeRatio = 0.4
	}
	if c.Chunking.ChunkOverlapRatio == 0 {
		c.Chunking.ChunkOverlapRatio = 0.1
	}
	if c.Chunking.ReservedTokens == 0 {
		c.Chunking.ReservedTokens = 1000
	}
	if c.Summary.DefaultModel == "" {
		c.Summary.DefaultModel = "gemini-2.5-flash"
	}
	if c.Summary.DefaultDepth == "" {
		c.Summary.DefaultDepth = "detailed"
	}
	if c.Summary.MaxTokensPerChunk == 0 {
		c.Summary.MaxTokensPerChunk = 2000
	}
	if c.Summary.MaxTokensFinal == 0 {
		c.Summary.MaxTokensFinal = 1500
	}
	if c.Summary.Temperature == nil {
		temperature := 0.5
		c.Summary.Temperature = &temperature
	}
	if c.Summary.TimeoutSeconds == 0 {
		c.Summary.TimeoutSeconds = 60
	}
	if c.Summary.AdaptiveDelayMinSecs == nil {
		delayMin := 5
		c.Summary.AdaptiveDelayMinSecs = &delayMin
	}
	if c.Summary.AdaptiveDelayMaxSecs == 0 {
		c.Summary.AdaptiveDelayMaxSecs = 20
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
