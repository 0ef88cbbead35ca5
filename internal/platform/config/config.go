package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr string

	// PostgresURL is empty when running on in-memory stores (dev, tests).
	PostgresURL string

	// RedisURL enables the live notification fan-out when set.
	RedisURL string

	// KafkaBrokers enables the durable domain-event stream when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	JWTSigningKey string
	TokenTTL      time.Duration

	// Razorpay-style payment gateway credentials. The secret signs payment
	// verification HMACs and must never reach a client.
	PaymentKeyID     string
	PaymentKeySecret string
	PaymentBaseURL   string

	// AIEngineURL selects the remote scorer; empty selects the baseline
	// rule-based implementation.
	AIEngineURL string

	// Document blob storage: S3 bucket when set, local uploads dir otherwise.
	S3Bucket   string
	S3Region   string
	UploadsDir string
}

// FromEnv builds a Config from environment variables, with development
// defaults for everything except the payment secret.
func FromEnv() Config {
	cfg := Config{
		Addr:             getenv("CAREBRIDGE_ADDR", ":8080"),
		PostgresURL:      os.Getenv("CAREBRIDGE_POSTGRES_URL"),
		RedisURL:         os.Getenv("CAREBRIDGE_REDIS_URL"),
		KafkaTopic:       getenv("CAREBRIDGE_KAFKA_TOPIC", "carebridge.domain-events"),
		JWTSigningKey:    getenv("CAREBRIDGE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TokenTTL:         15 * time.Minute,
		PaymentKeyID:     os.Getenv("CAREBRIDGE_PAYMENT_KEY_ID"),
		PaymentKeySecret: os.Getenv("CAREBRIDGE_PAYMENT_KEY_SECRET"),
		PaymentBaseURL:   getenv("CAREBRIDGE_PAYMENT_BASE_URL", "https://api.razorpay.com/v1"),
		AIEngineURL:      os.Getenv("CAREBRIDGE_AI_ENGINE_URL"),
		S3Bucket:         os.Getenv("CAREBRIDGE_S3_BUCKET"),
		S3Region:         getenv("CAREBRIDGE_S3_REGION", "ap-south-1"),
		UploadsDir:       getenv("CAREBRIDGE_UPLOADS_DIR", "uploads"),
	}

	if brokers := os.Getenv("CAREBRIDGE_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if ttl := os.Getenv("CAREBRIDGE_TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.TokenTTL = d
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
