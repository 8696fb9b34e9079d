package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the research loop
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Search    SearchConfig    `mapstructure:"search"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Research  ResearchConfig  `mapstructure:"research"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ServerConfig contains HTTP server and auth settings
type ServerConfig struct {
	Address   string `mapstructure:"address"`
	JWTSecret string `mapstructure:"jwt_secret"` // empty disables bearer auth
}

// LLMConfig contains the scoring-oracle provider settings. Any
// OpenAI-compatible chat-completions endpoint works via base_url.
type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.Model) == "" {
		return fmt.Errorf("llm.model is required")
	}
	return nil
}

// SearchConfig contains search provider settings
type SearchConfig struct {
	TavilyAPIKey string        `mapstructure:"tavily_api_key"`
	BochaAPIKey  string        `mapstructure:"bocha_api_key"`
	MaxResults   int           `mapstructure:"max_results"`
	TopK         int           `mapstructure:"top_k"`
	Freshness    string        `mapstructure:"freshness"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

func (s SearchConfig) Validate() error {
	if strings.TrimSpace(s.TavilyAPIKey) == "" && strings.TrimSpace(s.BochaAPIKey) == "" {
		return fmt.Errorf("search: at least one of tavily_api_key or bocha_api_key is required")
	}
	if s.TopK > s.MaxResults {
		return fmt.Errorf("search.top_k (%d) cannot exceed search.max_results (%d)", s.TopK, s.MaxResults)
	}
	return nil
}

// FetchConfig contains page extraction settings
type FetchConfig struct {
	Fetcher  string        `mapstructure:"fetcher"` // readability or chromedp
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxChars int           `mapstructure:"max_chars"`
}

// CacheConfig contains the Redis search-result cache settings. An empty
// address disables caching entirely.
type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// ResearchConfig contains the loop budget defaults
type ResearchConfig struct {
	MaxRounds int `mapstructure:"max_rounds"`
}

func (r ResearchConfig) Validate() error {
	if r.MaxRounds <= 0 {
		return fmt.Errorf("research.max_rounds must be > 0")
	}
	return nil
}

// TelemetryConfig contains metrics settings
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig loads config from file
func LoadConfig(path string) *Config {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("json")   // REQUIRED if the config file does not have the extension in the name
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("general.default_timeout", 30*time.Second)
	viper.SetDefault("server.address", ":10001")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.0)
	viper.SetDefault("llm.timeout", 60*time.Second)
	viper.SetDefault("search.max_results", 50)
	viper.SetDefault("search.top_k", 10)
	viper.SetDefault("search.freshness", "oneMonth")
	viper.SetDefault("search.timeout", 15*time.Second)
	viper.SetDefault("fetch.fetcher", "readability")
	viper.SetDefault("fetch.timeout", 15*time.Second)
	viper.SetDefault("fetch.max_chars", 20000)
	viper.SetDefault("cache.ttl", 10*time.Minute)
	viper.SetDefault("research.max_rounds", 5)
	viper.SetDefault("telemetry.enabled", true)

	if path == "" {
		viper.AddConfigPath("./config") // path to look for the config file in
		viper.AddConfigPath(".")        // optionally look for config in the working directory
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)                                // bin/
		viper.AddConfigPath(filepath.Join(exeDir, ".."))           // repo root
		viper.AddConfigPath(filepath.Join(exeDir, "..", "config")) // repo root/config
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("BAYE")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv() // read in environment variables that match (BAYE_*)

	if err := viper.ReadInConfig(); err != nil {
		// defaults plus env cover everything when no file is present
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	// unmarshal config
	var config Config

	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.LLM.Validate(); err != nil {
		panic(err)
	}
	if err := config.Search.Validate(); err != nil {
		panic(err)
	}
	if err := config.Research.Validate(); err != nil {
		panic(err)
	}
	return &config
}
