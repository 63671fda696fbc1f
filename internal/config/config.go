package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaAlertTopic  string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// SMS gateway configuration for critical-alert dispatch.
	SMSGatewayURL   string
	SMSGatewayToken string
	SMSEnabled      bool
	SMSTimeout      time.Duration
	SMSDedupeSize   int
}

const maxBatchSize = 1000

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is loaded first when present;
// existing environment variables are never overridden.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	flushInterval, err := parsePositiveDuration("BATCH_FLUSH_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	smsTimeout, err := parsePositiveDuration("SMS_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	smsToken := os.Getenv("SMS_GATEWAY_TOKEN")
	smsEnabled := smsToken != ""
	if v := os.Getenv("SMS_ENABLED"); v != "" {
		smsEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "advisory-requests"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "crop-advisories"),
		KafkaAlertTopic:    envOrDefault("KAFKA_ALERT_TOPIC", "critical-alerts"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "agri-advisory"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		SMSGatewayURL:   envOrDefault("SMS_GATEWAY_URL", "https://sms.krishisheba.example/v1/send"),
		SMSGatewayToken: smsToken,
		SMSEnabled:      smsEnabled,
		SMSTimeout:      smsTimeout,
		SMSDedupeSize:   parseSMSDedupeSize(),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_ALERT_TOPIC is required")
	}
	if cfg.SMSEnabled && cfg.SMSGatewayToken == "" {
		return nil, errors.New("SMS_ENABLED is true but SMS_GATEWAY_TOKEN is not set")
	}

	return cfg, nil
}

// envOrDefault returns the environment value or the default when unset.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if b := strings.TrimSpace(p); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBatchSize() (int, error) {
	s := envOrDefault("BATCH_SIZE", "50")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > maxBatchSize {
		return 0, fmt.Errorf("invalid BATCH_SIZE: must be 1-%d", maxBatchSize)
	}
	return n, nil
}

func parseSMSDedupeSize() int {
	if s := os.Getenv("SMS_DEDUPE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
