package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr             string
	SessionSignKey   string
	SessionTTL       time.Duration
	OTPCooldown      time.Duration
	CheckoutCallback string
	AdminToken       string
	// TrustedProxyHops is how many reverse proxies in front of the service
	// append to X-Forwarded-For. Zero means the peer address is the client.
	TrustedProxyHops int

	RemoteAPI     RemoteAPIConfig
	Redis         RedisConfig
	Postgres      PostgresConfig
	Kafka         KafkaConfig
	Telegram      TelegramConfig
	ReferenceData ReferenceDataConfig
	HSLookup      HSLookupConfig
	StartLimit    StartLimitConfig
}

// RemoteAPIConfig points at the external declaration/registration API.
type RemoteAPIConfig struct {
	BaseURL  string
	APIKey   string
	CallerID string
	Timeout  time.Duration
}

// RedisConfig enables the redis session store and limiter when URL is set.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig enables the postgres audit sink when URL is set.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// KafkaConfig enables the kafka audit sink when Brokers is non-empty.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// TelegramConfig enables the telegram notification channel when BotToken is set.
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// ReferenceDataConfig controls caching of static lookups.
type ReferenceDataConfig struct {
	TTL time.Duration
}

// HSLookupConfig bounds HS-code searches per session.
type HSLookupConfig struct {
	Limit  int
	Window time.Duration
}

// StartLimitConfig bounds session creation per client IP.
type StartLimitConfig struct {
	Limit    int
	Window   time.Duration
	Disabled bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	signKey := os.Getenv("SESSION_SIGNING_KEY")
	if signKey == "" {
		// Use a default for development - should be overridden in production
		signKey = "dev-session-key-change-in-production"
	}

	return Server{
		Addr:             envString("TRAVELGATE_ADDR", ":8080"),
		SessionSignKey:   signKey,
		SessionTTL:       envDuration("SESSION_TTL", 2*time.Hour),
		OTPCooldown:      envDuration("OTP_RESEND_COOLDOWN", 60*time.Second),
		CheckoutCallback: os.Getenv("CHECKOUT_CALLBACK_URL"),
		AdminToken:       os.Getenv("ADMIN_API_TOKEN"),
		TrustedProxyHops: max(envInt("TRUSTED_PROXY_HOPS", 0), 0),
		RemoteAPI: RemoteAPIConfig{
			BaseURL:  envString("REMOTE_API_BASE_URL", "http://localhost:9090"),
			APIKey:   os.Getenv("REMOTE_API_KEY"),
			CallerID: envString("REMOTE_API_CALLER_ID", "travelgate"),
			Timeout:  envDuration("REMOTE_API_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Kafka: KafkaConfig{
			Brokers:    envList("KAFKA_BROKERS"),
			AuditTopic: envString("KAFKA_AUDIT_TOPIC", "travelgate.audit"),
		},
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID:   int64(envInt("TELEGRAM_CHAT_ID", 0)),
		},
		ReferenceData: ReferenceDataConfig{
			TTL: envDuration("REFERENCE_DATA_TTL", time.Hour),
		},
		HSLookup: HSLookupConfig{
			Limit:  envInt("HS_LOOKUP_LIMIT", 10),
			Window: envDuration("HS_LOOKUP_WINDOW", 10*time.Second),
		},
		StartLimit: StartLimitConfig{
			Limit:    envInt("START_LIMIT", 20),
			Window:   envDuration("START_LIMIT_WINDOW", time.Minute),
			Disabled: os.Getenv("RATE_LIMIT_DISABLED") == "true",
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
