package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	OAuth    OAuthConfig
	Access   AccessConfig
	Media    MediaConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port        string
	BaseURL     string
	Environment string
	LogFilePath string
	ActivityLog string
	NatsURL     string
	RedisURL    string
}

type DatabaseConfig struct {
	Driver        string // "postgres" or "mongodb"
	Connection    string
	MongoDatabase string
	StoreTimeout  time.Duration
}

type SessionConfig struct {
	Store        string // "memory" or "redis"
	CookieName   string
	CookieSecure bool
	Expiration   time.Duration
	LoginTTL     time.Duration
	StateSecret  string
}

type ProviderCredentials struct {
	ClientID     string
	ClientSecret string
}

func (p ProviderCredentials) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

type OAuthConfig struct {
	GitHub  ProviderCredentials
	Discord ProviderCredentials
	Google  ProviderCredentials
}

type AccessConfig struct {
	AllowedUsersFile string
	AllowedUsers     string // comma separated, merged with the file
	EnforceOwnership bool
}

type MediaConfig struct {
	Root string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "4000"),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:4000"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/notez-backend.log"),
			ActivityLog: getEnv("ACTIVITY_LOG_PATH", "logs/activity.log"),
			NatsURL:     getEnv("NATS_URL", ""),
			RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Driver:        getEnv("DB_DRIVER", "postgres"),
			Connection:    getEnv("DB_CONNECTION_STRING", ""),
			MongoDatabase: getEnv("MONGO_DATABASE", "notez"),
			StoreTimeout:  getEnvAsDuration("STORE_TIMEOUT", 5*time.Second),
		},
		Session: SessionConfig{
			Store:        getEnv("SESSION_STORE", "memory"),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "notez_session"),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
			Expiration:   getEnvAsDuration("SESSION_EXPIRATION", 7*24*time.Hour),
			LoginTTL:     getEnvAsDuration("SESSION_LOGIN_TTL", 24*time.Hour),
			StateSecret:  getEnv("SESSION_SECRET", ""),
		},
		OAuth: OAuthConfig{
			GitHub: ProviderCredentials{
				ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
				ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
			},
			Discord: ProviderCredentials{
				ClientID:     getEnv("DISCORD_CLIENT_ID", ""),
				ClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
			},
			Google: ProviderCredentials{
				ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			},
		},
		Access: AccessConfig{
			AllowedUsersFile: getEnv("ALLOWED_USERS_FILE", "allowedUser.json"),
			AllowedUsers:     getEnv("ALLOWED_USERS", ""),
			EnforceOwnership: getEnvAsBool("ENFORCE_NOTE_OWNERSHIP", false),
		},
		Media: MediaConfig{
			Root: getEnv("MEDIA_ROOT", "./media"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "notez-be"),
			Environment: getEnv("GO_ENV", "development"),
		},
	}
}

// LoadAllowList merges the comma separated inline ids with the ids listed in
// path. The file holds a JSON or YAML list of strings; a missing file is only
// an error when no inline ids were given.
func LoadAllowList(path, inline string) ([]string, error) {
	var ids []string
	for _, id := range strings.Split(inline, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	if path == "" {
		return ids, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && len(ids) > 0 {
			return ids, nil
		}
		return nil, fmt.Errorf("read allow-list %s: %w", path, err)
	}

	var fromFile []string
	if err := yaml.Unmarshal(raw, &fromFile); err != nil {
		return nil, fmt.Errorf("parse allow-list %s: %w", path, err)
	}
	for _, id := range fromFile {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
