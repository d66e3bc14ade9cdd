package config

import (
	"net"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type AccessType string

const (
	SQLAccess      AccessType = "SQL"
	SquirrelAccess AccessType = "SQUIRREL" // Вместо ORM
)

type Config struct {
	TelegramBotToken  string  `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramRateLimit float64 `mapstructure:"TELEGRAM_RATE_LIMIT"`
	BotMetricsPort    int     `mapstructure:"BOT_METRICS_PORT"`
	LogLevel          string  `mapstructure:"LOG_LEVEL"`

	NewsAPIKey     string `mapstructure:"NEWSAPI_KEY"`
	NewsAPIBaseURL string `mapstructure:"NEWSAPI_BASE_URL"`
	DefaultSource  string `mapstructure:"DEFAULT_SOURCE"`
	HeadlinesLimit int    `mapstructure:"HEADLINES_LIMIT"`

	DBUser             string     `mapstructure:"DB_USER"`
	DBPassword         string     `mapstructure:"DB_PASSWORD"`
	DBHost             string     `mapstructure:"DB_HOST"`
	DBPort             string     `mapstructure:"DB_PORT"`
	DBName             string     `mapstructure:"DB_NAME"`
	DatabaseAccessType AccessType `mapstructure:"DATABASE_ACCESS_TYPE"`
	DatabaseMaxConn    int        `mapstructure:"DATABASE_MAX_CONNECTIONS"`

	UserRateLimit float64 `mapstructure:"USER_RATE_LIMIT"`
	UserRateBurst int     `mapstructure:"USER_RATE_BURST"`

	CommandTimeout       time.Duration `mapstructure:"COMMAND_TIMEOUT"`
	DeliveryCycleTimeout time.Duration `mapstructure:"DELIVERY_CYCLE_TIMEOUT"`

	KafkaBrokers            string `mapstructure:"KAFKA_BROKERS"`
	MessageTransport        string `mapstructure:"MESSAGE_TRANSPORT"`
	TopicHeadlineDeliveries string `mapstructure:"TOPIC_HEADLINE_DELIVERIES"`
	TopicDeadLetterQueue    string `mapstructure:"TOPIC_DEAD_LETTER_QUEUE"`
	FallbackEnabled         bool   `mapstructure:"FALLBACK_ENABLED"`

	RedisURL      string        `mapstructure:"REDIS_URL"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	RedisCacheTTL time.Duration `mapstructure:"REDIS_CACHE_TTL"`

	ExternalRequestTimeout time.Duration `mapstructure:"EXTERNAL_REQUEST_TIMEOUT"`
	RetryCount             int           `mapstructure:"RETRY_COUNT"`
	RetryBackoff           time.Duration `mapstructure:"RETRY_BACKOFF"`
	RetryableStatusCodes   []int         `mapstructure:"RETRYABLE_STATUS_CODES"`
}

func LoadConfig() *Config {
	setDefaults()

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return getDefaultConfig()
	}

	return config
}

// DatabaseURL собирает строку подключения к PostgreSQL из отдельных параметров.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}

	return u.String()
}

func setDefaults() {
	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("TELEGRAM_RATE_LIMIT", 25)
	viper.SetDefault("BOT_METRICS_PORT", 9094)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("NEWSAPI_KEY", "")
	viper.SetDefault("NEWSAPI_BASE_URL", "https://newsapi.org/v2")
	viper.SetDefault("DEFAULT_SOURCE", "bloomberg")
	viper.SetDefault("HEADLINES_LIMIT", 5)

	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "news_bot")
	viper.SetDefault("DATABASE_ACCESS_TYPE", string(SQLAccess))
	viper.SetDefault("DATABASE_MAX_CONNECTIONS", 10)

	viper.SetDefault("USER_RATE_LIMIT", 1)
	viper.SetDefault("USER_RATE_BURST", 5)

	viper.SetDefault("COMMAND_TIMEOUT", "10s")
	viper.SetDefault("DELIVERY_CYCLE_TIMEOUT", "30s")

	viper.SetDefault("KAFKA_BROKERS", "kafka:9092")
	viper.SetDefault("MESSAGE_TRANSPORT", "TELEGRAM")
	viper.SetDefault("TOPIC_HEADLINE_DELIVERIES", "headline-deliveries")
	viper.SetDefault("TOPIC_DEAD_LETTER_QUEUE", "headline-deliveries-dlq")
	viper.SetDefault("FALLBACK_ENABLED", true)

	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CACHE_TTL", "5m")

	viper.SetDefault("EXTERNAL_REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RETRY_COUNT", 2)
	viper.SetDefault("RETRY_BACKOFF", "1s")
	viper.SetDefault("RETRYABLE_STATUS_CODES", []int{408, 429, 500, 502, 503, 504})
}

func getDefaultConfig() *Config {
	return &Config{
		TelegramRateLimit: 25,
		BotMetricsPort:    9094,
		LogLevel:          "info",

		NewsAPIBaseURL: "https://newsapi.org/v2",
		DefaultSource:  "bloomberg",
		HeadlinesLimit: 5,

		DBUser:             "postgres",
		DBPassword:         "password",
		DBHost:             "localhost",
		DBPort:             "5432",
		DBName:             "news_bot",
		DatabaseAccessType: SQLAccess,
		DatabaseMaxConn:    10,

		UserRateLimit: 1,
		UserRateBurst: 5,

		CommandTimeout:       10 * time.Second,
		DeliveryCycleTimeout: 30 * time.Second,

		KafkaBrokers:            "kafka:9092",
		MessageTransport:        "TELEGRAM",
		TopicHeadlineDeliveries: "headline-deliveries",
		TopicDeadLetterQueue:    "headline-deliveries-dlq",
		FallbackEnabled:         true,

		RedisCacheTTL: 5 * time.Minute,

		ExternalRequestTimeout: 10 * time.Second,
		RetryCount:             2,
		RetryBackoff:           1 * time.Second,
		RetryableStatusCodes:   []int{408, 429, 500, 502, 503, 504},
	}
}
