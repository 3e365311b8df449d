// Package configs provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// DBDSN is the ClickHouse connection string for the local update cache.
	DBDSN string

	// Quote contains settings for the polled quote feed.
	Quote QuoteConfig

	// Mention contains settings for the pushed mention feed.
	Mention MentionConfig

	// Pipeline contains settings for the composition pipeline itself.
	Pipeline PipelineConfig

	// Firehose contains Kafka settings for the optional merged-stream mirror.
	Firehose FirehoseConfig
}

// QuoteConfig holds settings for the interval-polled quote source.
type QuoteConfig struct {
	// Symbols is the fixed instrument set fetched on every tick (comma-separated in env).
	Symbols []string

	// PollInterval is the time between quote fetches.
	PollInterval time.Duration

	// APIURL is the quote endpoint queried once per tick for all symbols combined.
	APIURL string

	// APIKey is the opaque credential passed to the quote endpoint.
	APIKey string

	// RequestsPerSecond caps outbound quote requests.
	RequestsPerSecond float64
}

// MentionConfig holds settings for the push mention stream.
type MentionConfig struct {
	// WSURL is the WebSocket endpoint of the mention stream.
	WSURL string

	// AuthToken is the opaque credential sent on connect.
	AuthToken string

	// TrackedKeywords is the keyword set used both for the remote filter
	// query and for the local KeywordFilter stage.
	TrackedKeywords []string

	// Languages restricts the remote stream (comma-separated in env).
	Languages []string
}

// PipelineConfig holds settings for the pipeline stages.
type PipelineConfig struct {
	// SampleWindow is the fixed window over which mention bursts collapse
	// to the latest item.
	SampleWindow time.Duration
}

// FirehoseConfig holds Kafka settings for mirroring the merged stream.
type FirehoseConfig struct {
	// Enabled turns the mirror on. When false no producer is created.
	Enabled bool

	// Broker is the Kafka broker address (e.g., "localhost:9092").
	Broker string

	// Topic is the Kafka topic for merged updates.
	Topic string

	// GroupID is the consumer group ID used by cmd/tail.
	GroupID string
}

// getDatabaseDSN constructs the ClickHouse DSN from environment variables.
func getDatabaseDSN() string {
	dbUser := getEnv("CLICKHOUSE_USER", "default")
	dbPassword := getEnv("CLICKHOUSE_PASSWORD", "")
	dbHost := getEnv("CLICKHOUSE_HOST", "localhost")
	dbPort := getEnv("CLICKHOUSE_TCP_PORT", "9000")
	dbName := getEnv("CLICKHOUSE_DB", "stockpulse")

	return fmt.Sprintf(
		"clickhouse://%s:%s@%s:%s/%s?dial_timeout=10s&read_timeout=20s",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)
}

// AppLoad loads all application configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func AppLoad() *AppConfig {
	_ = godotenv.Load() // Ignore error - .env is optional

	return &AppConfig{
		DBDSN: getDatabaseDSN(),
		Quote: QuoteConfig{
			Symbols:           getEnvList("QUOTE_SYMBOLS", "MSFT,AAPL,GOOGL"),
			PollInterval:      getEnvDuration("QUOTE_POLL_INTERVAL", 10*time.Second),
			APIURL:            getEnv("QUOTE_API_URL", "https://api.worldtradingdata.example/v1/stock"),
			APIKey:            getEnv("QUOTE_API_KEY", ""),
			RequestsPerSecond: getEnvFloat("QUOTE_REQUESTS_PER_SECOND", 1.0),
		},
		Mention: MentionConfig{
			WSURL:           getEnv("MENTION_WS_URL", "wss://stream.mentions.example/v1/filter"),
			AuthToken:       getEnv("MENTION_AUTH_TOKEN", ""),
			TrackedKeywords: getEnvList("MENTION_TRACKED_KEYWORDS", "Google,Microsoft,Apple"),
			Languages:       getEnvList("MENTION_LANGUAGES", "en"),
		},
		Pipeline: PipelineConfig{
			SampleWindow: getEnvDuration("MENTION_SAMPLE_WINDOW", 3*time.Second),
		},
		Firehose: FirehoseConfig{
			Enabled: getEnvBool("FIREHOSE_ENABLED", false),
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_UPDATE_TOPIC", "stockpulse_updates"),
			GroupID: getEnv("KAFKA_UPDATE_GROUP_ID", "stockpulse-tail"),
		},
	}
}

// NewLogger builds the process-wide logger. Level comes from LOG_LEVEL
// ("debug", "info", "warn", "error"), defaulting to info.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated environment variable, trimming spaces.
func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// getEnvDuration returns the environment variable parsed as a duration or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvBool returns the environment variable as bool or a default.
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
