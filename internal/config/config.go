package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingBaseURL is returned when no upstream API base URL is configured.
// There is no sensible default to fall back to, so startup must abort.
var ErrMissingBaseURL = errors.New("API_BASE_URL is not set")

type Config struct {
	API  APIConfig
	Site SiteConfig
	App  AppConfig
}

type APIConfig struct {
	// BaseURL is the upstream origin, already stripped of trailing slashes.
	BaseURL  string
	PageSize int
	// MaxPages bounds pagination-following when accumulating a full
	// collection from a paginated resource.
	MaxPages int
}

type SiteConfig struct {
	// BaseURL is the public site origin used in generated sitemap entries.
	BaseURL string
}

type AppConfig struct {
	Env string
}

// Load reads configuration from a .env file and the process environment.
// The API base URL is required; everything else has a default.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SITE_BASE_URL", "https://www.bunnytools.store")
	viper.SetDefault("PAGE_SIZE", 20)
	viper.SetDefault("MAX_PAGES", 10)

	// A missing .env file is fine; the environment alone may be enough.
	_ = viper.ReadInConfig()

	rawBase := viper.GetString("API_BASE_URL")
	if strings.TrimSpace(rawBase) == "" {
		return nil, ErrMissingBaseURL
	}

	return &Config{
		API: APIConfig{
			BaseURL:  strings.TrimRight(rawBase, "/"),
			PageSize: viper.GetInt("PAGE_SIZE"),
			MaxPages: viper.GetInt("MAX_PAGES"),
		},
		Site: SiteConfig{
			BaseURL: strings.TrimRight(viper.GetString("SITE_BASE_URL"), "/"),
		},
		App: AppConfig{
			Env: viper.GetString("APP_ENV"),
		},
	}, nil
}
