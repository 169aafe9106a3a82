// Package config holds the outbound-API configuration: endpoints, keys
// and fetch sizes for the news, geocoding and weather sources, plus the
// storage and session backends. A YAML file supplies defaults;
// environment variables override individual fields.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type NewsConfig struct {
	BaseURL  string `yaml:"baseUrl"`
	APIKey   string `yaml:"apiKey"`
	Country  string `yaml:"country"`
	PageSize int    `yaml:"pageSize"`
}

type GeocodeConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

type WeatherConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

type StorageConfig struct {
	PostgresURL string `yaml:"postgresUrl"`
	RedisURL    string `yaml:"redisUrl"`
}

type Config struct {
	News        NewsConfig    `yaml:"news"`
	Geocode     GeocodeConfig `yaml:"geocode"`
	Weather     WeatherConfig `yaml:"weather"`
	Storage     StorageConfig `yaml:"storage"`
	LocationLog string        `yaml:"locationLog"`
}

type Loader struct {
	reader io.Reader
}

func NewLoader(reader io.Reader) *Loader {
	return &Loader{reader: reader}
}

func (l *Loader) Load() (*Config, error) {
	cfg := defaults()

	if l.reader != nil {
		decoder := yaml.NewDecoder(l.reader)
		if err := decoder.Decode(cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads config from an optional YAML file path. An empty path
// yields defaults plus environment overrides.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return NewLoader(nil).Load()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return NewLoader(f).Load()
}

func defaults() *Config {
	return &Config{
		News: NewsConfig{
			BaseURL:  "https://newsapi.org",
			Country:  "us",
			PageSize: 25,
		},
		Geocode: GeocodeConfig{
			BaseURL: "https://maps.googleapis.com/maps/api",
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.open-meteo.com",
		},
	}
}

func (c *Config) applyEnv() {
	overrideStr(&c.News.BaseURL, "NEWS_API_URL")
	overrideStr(&c.News.APIKey, "NEWS_API_KEY")
	overrideStr(&c.News.Country, "NEWS_COUNTRY")
	overrideInt(&c.News.PageSize, "NEWS_PAGE_SIZE")
	overrideStr(&c.Geocode.BaseURL, "GEOCODE_API_URL")
	overrideStr(&c.Geocode.APIKey, "GEOCODE_API_KEY")
	overrideStr(&c.Weather.BaseURL, "WEATHER_API_URL")
	overrideStr(&c.Storage.PostgresURL, "POSTGRES_URL")
	overrideStr(&c.Storage.RedisURL, "REDIS_URL")
	overrideStr(&c.LocationLog, "LOCATION_LOG_PATH")
}

func (c *Config) Validate() error {
	if c.News.APIKey == "" {
		return fmt.Errorf("news api key is required (NEWS_API_KEY)")
	}
	if c.Storage.PostgresURL == "" {
		return fmt.Errorf("postgres url is required (POSTGRES_URL)")
	}
	if c.Storage.RedisURL == "" {
		return fmt.Errorf("redis url is required (REDIS_URL)")
	}
	if c.News.PageSize <= 0 {
		return fmt.Errorf("news page size must be positive")
	}
	return nil
}

func overrideStr(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func overrideInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
