package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Location is one geo coordinate pair used as a venue hint on matched
// verifications.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Config holds application configuration.
type Config struct {
	TelegramBotToken string
	DataDir          string
	AdminPort        string
	AdminRateLimit   string // ulule/limiter format, e.g. "30-M"
	BookingTTL       time.Duration
	IsProduction     bool
	LocationHints    []Location
	OCRURL           string
	BookingWebAppURL string
}

// LoadConfig loads configuration from environment variables and a .env
// file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("ADMIN_PORT", "8090")
	viper.SetDefault("ADMIN_RATE_LIMIT", "30-M")
	viper.SetDefault("BOOKING_TTL", "10m")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOCATION_HINTS", "")
	viper.SetDefault("OCR_URL", "")
	viper.SetDefault("BOOKING_WEBAPP_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.TelegramBotToken = viper.GetString("TELEGRAM_BOT_TOKEN")
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN environment variable not set. The bot cannot connect without it.")
	}

	cfg.DataDir = viper.GetString("DATA_DIR")
	cfg.AdminPort = viper.GetString("ADMIN_PORT")
	cfg.AdminRateLimit = viper.GetString("ADMIN_RATE_LIMIT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	ttlStr := viper.GetString("BOOKING_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
		if ttlStr != "" {
			log.Printf("Warning: Invalid value for BOOKING_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
		}
	}
	cfg.BookingTTL = ttl

	cfg.LocationHints = parseLocationHints(viper.GetString("LOCATION_HINTS"))

	cfg.OCRURL = viper.GetString("OCR_URL")
	if cfg.OCRURL == "" {
		log.Println("Warning: OCR_URL not set. Screenshot verification will be disabled.")
	}
	cfg.BookingWebAppURL = viper.GetString("BOOKING_WEBAPP_URL")

	return cfg, nil
}

// parseLocationHints parses "lat,lon[;lat,lon...]"; malformed pairs are
// skipped with a warning.
func parseLocationHints(raw string) []Location {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var hints []Location
	for _, pair := range strings.Split(raw, ";") {
		parts := strings.Split(strings.TrimSpace(pair), ",")
		if len(parts) != 2 {
			log.Printf("Warning: skipping malformed LOCATION_HINTS pair %q\n", pair)
			continue
		}
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLat != nil || errLon != nil {
			log.Printf("Warning: skipping malformed LOCATION_HINTS pair %q\n", pair)
			continue
		}
		hints = append(hints, Location{Latitude: lat, Longitude: lon})
	}
	return hints
}
