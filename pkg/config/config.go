package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the explicit configuration handed to the pipeline at construction
// time. Nothing reads ambient process state after Load returns.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Extract   ExtractConfig   `yaml:"extract"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	YouTube   YouTubeConfig   `yaml:"youtube"`
}

type ServerConfig struct {
	ListenAddr     string        `yaml:"listen_addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type ExtractConfig struct {
	// MinContentLength is the web extraction quality gate threshold.
	MinContentLength int           `yaml:"min_content_length"`
	HTTPTimeout      time.Duration `yaml:"http_timeout"`
}

type SentimentConfig struct {
	MinScore       float64 `yaml:"min_score"`
	MinQuoteLength int     `yaml:"min_quote_length"`
	MaxQuoteLength int     `yaml:"max_quote_length"`
	DefaultTopN    int     `yaml:"default_top_n"`
}

type YouTubeConfig struct {
	// APIKey enables Data API metadata enrichment when set.
	APIKey string `yaml:"api_key"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:     ":8000",
			RequestTimeout: 60 * time.Second,
		},
		Extract: ExtractConfig{
			MinContentLength: 200,
			HTTPTimeout:      30 * time.Second,
		},
		Sentiment: SentimentConfig{
			MinScore:       0.2,
			MinQuoteLength: 20,
			MaxQuoteLength: 200,
			DefaultTopN:    5,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file
// (CONFIG_FILE, default config.yaml) and environment variables, in that
// order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.Server.ListenAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Server.ListenAddr = ":" + port
	}
	if key := os.Getenv("YOUTUBE_API_KEY"); key != "" {
		cfg.YouTube.APIKey = key
	}
	if v := os.Getenv("MIN_CONTENT_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MIN_CONTENT_LENGTH %q: %w", v, err)
		}
		cfg.Extract.MinContentLength = n
	}

	return cfg, nil
}
