package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the risk analysis binaries.
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	LogFormat      string
	GRPCPort       string
	HTTPPort       string
	DatabaseURL    string
	KafkaBrokers   []string
	KafkaClientID  string
	KafkaTopic     string
	RedisURL       string
	OTLPEndpoint   string
	TLSCertFile    string
	TLSKeyFile     string
	FlagThreshold  string
	PolicyFile     string
	RedisTTL       time.Duration
	MaxUploadBytes int64
	MaxConcurrent  int
	GRPCReflection bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName:    getEnv("SERVICE_NAME", "risk-analysis"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		GRPCPort:       getEnv("GRPC_PORT", "8090"),
		HTTPPort:       getEnv("HTTP_PORT", "9090"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaClientID:  getEnv("KAFKA_CLIENT_ID", "risk-analysis"),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "fraud.events"),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisTTL:       getDuration("REDIS_TTL", 15*time.Minute),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		FlagThreshold:  getEnv("FLAG_THRESHOLD", ""),
		PolicyFile:     getEnv("SCORING_POLICY_FILE", ""),
		MaxUploadBytes: getInt64("MAX_UPLOAD_BYTES", 64<<20),
		MaxConcurrent:  int(getInt64("MAX_CONCURRENT_ASSESSMENTS", 4)),
		GRPCReflection: getBool("GRPC_REFLECTION", true),
	}
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// TLSEnabled reports whether both halves of a server key pair are configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Policy resolves the scoring policy: the YAML file when configured, then
// FLAG_THRESHOLD on top of it.
func (c *Config) Policy() (Policy, error) {
	policy := DefaultPolicy()
	if c.PolicyFile != "" {
		p, err := LoadPolicyFile(c.PolicyFile)
		if err != nil {
			return Policy{}, err
		}
		policy = p
	}
	if c.FlagThreshold != "" {
		if err := policy.Threshold.UnmarshalText([]byte(c.FlagThreshold)); err != nil {
			return Policy{}, fmt.Errorf("invalid FLAG_THRESHOLD: %w", err)
		}
	}
	return policy, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if v, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return v
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
