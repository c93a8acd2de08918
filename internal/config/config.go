// Package config reads server settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rajamantri/internal/models"
)

// Defaults for unset keys
const (
	DefaultPort           = 3001
	DefaultRedisAddr      = "localhost:6379"
	DefaultMaxRooms       = 100
	DefaultRoomCodeLength = 6
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultRateLimit      = 5
	DefaultRateBurst      = 10
)

// Config holds every setting the server reads at startup
type Config struct {
	Port           int
	AllowedOrigins []string
	PublicURL      string

	// Redis backs the results ledger; the server runs without it when unreachable
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Discord is enabled when a token is set
	DiscordToken  string
	ApplicationID string
	GuildID       string

	MaxRooms       int
	RoomCodeLength int
	Adjudication   models.Adjudication

	LogLevel  string
	LogFormat string

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing files are ignored; variables already set win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from environment variables alone
func FromEnv() (*Config, error) {
	var err error
	cfg := &Config{
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		PublicURL:      getEnv("PUBLIC_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		DiscordToken:   getEnv("DISCORD_TOKEN", ""),
		ApplicationID:  getEnv("APPLICATION_ID", ""),
		GuildID:        getEnv("GUILD_ID", ""),
		Adjudication:   models.Adjudication(getEnv("ADJUDICATION", string(models.AdjudicationImmediate))),
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:      getEnv("LOG_FORMAT", DefaultLogFormat),
	}

	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.MaxRooms, err = getEnvInt("MAX_ROOMS", DefaultMaxRooms); err != nil {
		return nil, err
	}
	if cfg.RoomCodeLength, err = getEnvInt("ROOM_CODE_LENGTH", DefaultRoomCodeLength); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerSecond, err = getEnvFloat("RATE_LIMIT_PER_SECOND", DefaultRateLimit); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", DefaultRateBurst); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot start with
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.MaxRooms <= 0 {
		return fmt.Errorf("invalid MAX_ROOMS %d", c.MaxRooms)
	}
	if c.RoomCodeLength < 4 {
		return fmt.Errorf("invalid ROOM_CODE_LENGTH %d (want at least 4)", c.RoomCodeLength)
	}
	if !c.Adjudication.Valid() {
		return fmt.Errorf("invalid ADJUDICATION %q", c.Adjudication)
	}
	if c.RateLimitPerSecond <= 0 {
		return fmt.Errorf("invalid RATE_LIMIT_PER_SECOND %v", c.RateLimitPerSecond)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("invalid RATE_LIMIT_BURST %d", c.RateLimitBurst)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// DiscordEnabled reports whether the Discord gateway should start
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

// splitList parses a comma separated list, dropping blanks
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
