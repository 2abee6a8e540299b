package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

var Service *Config

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Consul   ConsulConfig
	Gemini   GeminiConfig
	SendGrid SendGridConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	ServiceName    string
	ServiceAddress string
	ServiceID      string
	AllowedOrigins []string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URI      string
	Exchange string
	LogFile  string
}

type ConsulConfig struct {
	Address string
}

type GeminiConfig struct {
	APIKey      string
	BaseURL     string
	Models      []string
	MaxAttempts int
	BaseBackoff time.Duration
}

type SendGridConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
	LoginURL  string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

func Load() *Config {
	Service = &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "6700"),
			Host:           getEnv("HOST", "0.0.0.0"),
			ServiceName:    getEnv("SERVICE_NAME", "hexaboard-service"),
			ServiceAddress: getEnv("SERVICE_ADDRESS", "hexaboard-service"),
			ServiceID:      getEnv("SERVICE_NAME", "hexaboard-service") + "-" + getEnv("HOSTNAME", "hexaboard"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "hexaboard"),
			Timeout:  getEnvAsDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "hexaboard.events"),
			LogFile:  getEnv("EVENT_LOG_FILE", "events.log"),
		},
		Consul: ConsulConfig{
			Address: getEnv("CONSUL_ADDR", ""),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			BaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Models:      getEnvAsList("GEMINI_MODELS", "gemini-1.5-flash,gemini-1.5-flash-8b,gemini-1.5-pro"),
			MaxAttempts: getEnvAsInt("GEMINI_MAX_ATTEMPTS", 3),
			BaseBackoff: getEnvAsDuration("GEMINI_BASE_BACKOFF", 500*time.Millisecond),
		},
		SendGrid: SendGridConfig{
			APIKey:    getEnv("SENDGRID_API_KEY", ""),
			FromName:  getEnv("MAIL_FROM_NAME", "The HexaBoard Team"),
			FromEmail: getEnv("MAIL_FROM_EMAIL", "noreply@hexaboard.io"),
			LoginURL:  getEnv("MAIL_LOGIN_URL", "http://localhost:3000/login"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "hexaboard-dev-secret"),
			TTL:    getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
	}
	return Service
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid int value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
