package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreBackendFile  = "file"
	StoreBackendRedis = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store   StoreConfig
	Redis   RedisConfig
	Seed    SeedConfig
	Tutor   TutorConfig
	Grader  GraderConfig
	Exports ExportsConfig
	CORS    CORSConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// StoreConfig selects and tunes the persistent key/value store.
type StoreConfig struct {
	Backend string
	DataDir string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SeedConfig describes the administrator account created on first run.
type SeedConfig struct {
	AdminName  string
	AdminEmail string
}

// TutorConfig configures the generative-AI collaborator.
type TutorConfig struct {
	Enabled bool
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GraderConfig tunes the background auto-grading queue.
type GraderConfig struct {
	Enabled    bool
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// ExportsConfig controls roster/grade export artifacts.
type ExportsConfig struct {
	StorageDir string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		Backend: strings.ToLower(v.GetString("STORE_BACKEND")),
		DataDir: v.GetString("STORE_DATA_DIR"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Seed = SeedConfig{
		AdminName:  v.GetString("SEED_ADMIN_NAME"),
		AdminEmail: v.GetString("SEED_ADMIN_EMAIL"),
	}

	cfg.Tutor = TutorConfig{
		Enabled: v.GetBool("TUTOR_ENABLED"),
		BaseURL: v.GetString("TUTOR_BASE_URL"),
		APIKey:  v.GetString("TUTOR_API_KEY"),
		Model:   v.GetString("TUTOR_MODEL"),
		Timeout: parseDuration(v.GetString("TUTOR_TIMEOUT"), 20*time.Second),
	}

	cfg.Grader = GraderConfig{
		Enabled:    v.GetBool("GRADER_ENABLED"),
		Workers:    v.GetInt("GRADER_WORKERS"),
		MaxRetries: v.GetInt("GRADER_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("GRADER_RETRY_DELAY"), 5*time.Second),
	}

	cfg.Exports = ExportsConfig{
		StorageDir: v.GetString("EXPORTS_STORAGE_DIR"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_BACKEND", StoreBackendFile)
	v.SetDefault("STORE_DATA_DIR", "./data")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SEED_ADMIN_NAME", "Administrador Principal")
	v.SetDefault("SEED_ADMIN_EMAIL", "admin@educa.com")

	v.SetDefault("TUTOR_ENABLED", true)
	v.SetDefault("TUTOR_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("TUTOR_API_KEY", "")
	v.SetDefault("TUTOR_MODEL", "gemini-2.5-flash")
	v.SetDefault("TUTOR_TIMEOUT", "20s")

	v.SetDefault("GRADER_ENABLED", true)
	v.SetDefault("GRADER_WORKERS", 1)
	v.SetDefault("GRADER_MAX_RETRIES", 2)
	v.SetDefault("GRADER_RETRY_DELAY", "5s")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
