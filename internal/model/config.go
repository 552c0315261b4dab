// Package model holds the configuration tree shared by the pensum CLI and
// server.
package model

import (
	"fmt"
	"time"
)

// Config is the full pensum configuration.
type Config struct {
	Canvas CanvasConfig `yaml:"canvas" mapstructure:"canvas"`
	OpenAI OpenAIConfig `yaml:"openai" mapstructure:"openai"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Index  IndexConfig  `yaml:"index" mapstructure:"index"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// CanvasConfig configures the Canvas LMS API client.
type CanvasConfig struct {
	Domain            string        `yaml:"domain" mapstructure:"domain"` // e.g. uio.instructure.com
	Token             string        `yaml:"-" mapstructure:"token"`       // bearer token; env only, never written to config files
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	PerPage           int           `yaml:"per_page" mapstructure:"per_page"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// OpenAIConfig configures the embeddings and chat client. BaseURL makes
// any OpenAI-compatible endpoint (Groq, Ollama, ...) usable.
type OpenAIConfig struct {
	APIKey         string `yaml:"-" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	ChatModel      string `yaml:"chat_model" mapstructure:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model" mapstructure:"embedding_model"`
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout        int    `yaml:"timeout" mapstructure:"timeout"` // seconds, per API call
}

// ServerConfig configures the HTTP backend.
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	AllowedOrigin   string        `yaml:"allowed_origin" mapstructure:"allowed_origin"`
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CacheConfig configures the Canvas response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// IndexConfig configures document indexing and retrieval.
type IndexConfig struct {
	DBPath  string `yaml:"db_path" mapstructure:"db_path"` // sqlite file for the persisted index
	TopK    int    `yaml:"top_k" mapstructure:"top_k"`
	Workers int    `yaml:"workers" mapstructure:"workers"` // concurrent per-course fetches
}

// LogConfig configures server-side logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // "json" or "text"
}

// DefaultConfig returns the built-in defaults. Credentials always come
// from the environment (CANVAS_API_TOKEN, OPENAI_API_KEY).
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Timeout:           30 * time.Second,
			MaxBodyBytes:      4_000_000,
			PerPage:           50,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		OpenAI: OpenAIConfig{
			ChatModel:      "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			MaxTokens:      1000,
			Timeout:        60,
		},
		Server: ServerConfig{
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    120 * time.Second, // QA calls wait on the LLM
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigin:   "http://localhost:3000",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "data/cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   6 * time.Hour,
		},
		Index: IndexConfig{
			DBPath:  "data/index.db",
			TopK:    4,
			Workers: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
