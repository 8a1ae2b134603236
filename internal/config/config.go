package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	"valorant-sync/internal/constants"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Flags carries command line overrides into Load.
type Flags struct {
	EnvFile string
	Port    string
}

type Config struct {
	HDevAPIKey  string
	HDevBaseURL string
	DBPath      string
	ServerPort  string
	LogLevel    string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TrackedGame        string
	MatchHistorySize   int
	ExternalAPITimeout time.Duration
	StatsLocation      *time.Location

	// EnvFileLoaded reports whether the env file was found; logged at startup.
	EnvFileLoaded bool
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func Load(flags Flags) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	loaded := godotenv.Load(envFile) == nil

	cfg := &Config{
		HDevAPIKey:    getEnv("HDEV_API_KEY", ""),
		HDevBaseURL:   getEnv("HDEV_BASE_URL", "https://api.henrikdev.xyz"),
		DBPath:        getEnv("DB_PATH", "valorant.db"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		TrackedGame:   getEnv("TRACKED_GAME", constants.DefaultTrackedGame),
		EnvFileLoaded: loaded,
	}

	if flags.Port != "" {
		cfg.ServerPort = flags.Port
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.MatchHistorySize, err = getEnvInt("MATCH_HISTORY_SIZE", constants.DefaultMatchHistorySize); err != nil {
		return nil, err
	}
	if cfg.MatchHistorySize <= 0 {
		return nil, fmt.Errorf("MATCH_HISTORY_SIZE must be positive, got %d", cfg.MatchHistorySize)
	}
	if cfg.ExternalAPITimeout, err = getEnvDuration("EXTERNAL_API_TIMEOUT", constants.ExternalAPITimeout); err != nil {
		return nil, err
	}

	tz := getEnv("STATS_TIMEZONE", "UTC")
	cfg.StatsLocation, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_TIMEZONE %q: %w", tz, err)
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return parsed, nil
}

var Module = fx.Provide(Load)
