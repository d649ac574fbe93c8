package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Session     SessionConfig
	Storage     StorageConfig
	Push        PushConfig
	DeadLetter  DeadLetterConfig
	Metrics     MetricsConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxConn      int
	EnablePprof  bool
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
	// SlowQuery is the duration above which statements are logged; zero disables it.
	SlowQuery time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
}

// SessionConfig controls how sessions issued by the auth service are read.
type SessionConfig struct {
	TTL           time.Duration
	SlidingWindow time.Duration
}

type StorageConfig struct {
	Bucket          string
	CredentialsFile string
	PublicBaseURL   string
	EmulatorHost    string
	MaxUploadSize   int64
	UploadExpiry    time.Duration
}

type PushConfig struct {
	Enabled     bool
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
}

// DeadLetterConfig sizes the local journal of failed event deliveries.
type DeadLetterConfig struct {
	Path            string
	MaxEntries      int
	Retention       time.Duration
	CleanupSchedule string
}

type MetricsConfig struct {
	Enabled   bool
	Path      string
	Namespace string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "journal"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:      getInt("SERVER_MAX_CONN", 0),
			EnablePprof:  getBool("SERVER_ENABLE_PPROF", false),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "journal"),
			User:            getString("DB_USER", "journal"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
			SlowQuery:       getDuration("DB_SLOW_QUERY", 250*time.Millisecond),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getString("JWT_ISSUER", "journal-auth"),
		},
		Session: SessionConfig{
			TTL:           getDuration("SESSION_TTL", 30*24*time.Hour),
			SlidingWindow: getDuration("SESSION_SLIDING_WINDOW", 24*time.Hour),
		},
		Storage: StorageConfig{
			Bucket:          os.Getenv("STORAGE_BUCKET"),
			CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			PublicBaseURL:   os.Getenv("STORAGE_PUBLIC_BASE_URL"),
			EmulatorHost:    os.Getenv("STORAGE_EMULATOR_HOST"),
			MaxUploadSize:   int64(getInt("STORAGE_MAX_UPLOAD_BYTES", 10<<20)),
			UploadExpiry:    getDuration("STORAGE_UPLOAD_EXPIRY", 15*time.Minute),
		},
		Push: PushConfig{
			Enabled:     getBool("PUSH_ENABLED", false),
			Endpoint:    getString("PUSH_ENDPOINT", "https://exp.host/--/api/v2/push/send"),
			AccessToken: os.Getenv("PUSH_ACCESS_TOKEN"),
			Timeout:     getDuration("PUSH_TIMEOUT", 10*time.Second),
		},
		DeadLetter: DeadLetterConfig{
			Path:            getString("DEAD_LETTER_PATH", "./data/dead_letters.db"),
			MaxEntries:      getInt("DEAD_LETTER_MAX_ENTRIES", 100_000),
			Retention:       getDuration("DEAD_LETTER_RETENTION", 7*24*time.Hour),
			CleanupSchedule: getString("DEAD_LETTER_CLEANUP_SCHEDULE", "@every 1h"),
		},
		Metrics: MetricsConfig{
			Enabled:   getBool("SERVER_ENABLE_METRICS", true),
			Path:      getString("METRICS_PATH", "/metrics"),
			Namespace: getString("METRICS_NAMESPACE", "journal"),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" && c.Environment == "production" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.Session.SlidingWindow < 0 || c.Session.SlidingWindow > c.Session.TTL {
		return fmt.Errorf("SESSION_SLIDING_WINDOW must be between 0 and SESSION_TTL (%s)", c.Session.TTL)
	}
	if c.Storage.MaxUploadSize <= 0 {
		return errors.New("STORAGE_MAX_UPLOAD_BYTES must be positive")
	}
	if c.DeadLetter.MaxEntries <= 0 {
		return errors.New("DEAD_LETTER_MAX_ENTRIES must be positive")
	}
	return nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
