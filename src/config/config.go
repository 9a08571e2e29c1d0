package config

import (
	"os"

	"github.com/stake-plus/company-scout/src/data"
	"gorm.io/gorm"
)

// Config carries everything the pipeline needs; it is built once in main and
// passed by reference. No component reads the environment on its own.
type Config struct {
	Port     string
	RedisURL string

	// Search API (required)
	ExaAPIKey  string
	ExaBaseURL string
	ExaModel   string

	// GitHub (optional; raises rate limits when present)
	GithubToken string

	// API auth (optional; auth disabled when either value is empty)
	JWTSecret  string
	AuthSecret string

	// Discord notifications (optional)
	DiscordToken     string
	DiscordChannelID string

	// Resolver behaviour: skip site scan/scoring and validate every
	// LLM-mentioned GitHub link directly.
	SimpleResolver bool
}

// Load assembles configuration from the settings table with env fallbacks.
// db may be nil when no settings store is configured.
func Load(db *gorm.DB) Config {
	if db != nil {
		if err := data.LoadSettings(db); err != nil {
			// Env fallbacks still work.
		}
	}

	return Config{
		Port:             get("port", "PORT", "8080"),
		RedisURL:         get("redis_url", "REDIS_URL", ""),
		ExaAPIKey:        get("exa_api_key", "EXA_API_KEY", ""),
		ExaBaseURL:       get("exa_base_url", "EXA_BASE_URL", "https://api.exa.ai"),
		ExaModel:         get("exa_model", "EXA_MODEL", "exa"),
		GithubToken:      get("github_token", "GITHUB_TOKEN", ""),
		JWTSecret:        get("jwt_secret", "JWT_SECRET", ""),
		AuthSecret:       get("auth_secret", "AUTH_SECRET", ""),
		DiscordToken:     get("discord_token", "DISCORD_TOKEN", ""),
		DiscordChannelID: get("discord_channel_id", "DISCORD_CHANNEL_ID", ""),
		SimpleResolver:   get("resolver_simple_mode", "RESOLVER_SIMPLE_MODE", "") == "1",
	}
}

// get retrieves a setting with env fallback.
func get(name, envKey, defaultValue string) string {
	val := data.GetSetting(name)
	if val == "" {
		val = os.Getenv(envKey)
	}
	if val == "" {
		val = defaultValue
	}
	return val
}
