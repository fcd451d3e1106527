package config

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is loaded once at startup and handed to every component that needs it.
type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      []byte
	SecretIsRandom bool // tokens do not survive a restart when true
	TokenTTL       time.Duration
	UploadDir      string
	MaxUploadBytes int64
	AdminUsername  string
	AdminPassword  string
	GinMode        string
	LogLevel       string
}

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Load reads an optional .env and config.yaml, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "5000")
	v.SetDefault("database_url", "sqlite://database.db")
	v.SetDefault("secret_key", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("upload_folder", "uploads")
	v.SetDefault("max_upload_bytes", 16*1024*1024)
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "changeme")
	v.SetDefault("gin_mode", "")
	v.SetDefault("log_level", "info")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		DatabaseURL:    v.GetString("database_url"),
		TokenTTL:       v.GetDuration("token_ttl"),
		UploadDir:      v.GetString("upload_folder"),
		MaxUploadBytes: v.GetInt64("max_upload_bytes"),
		AdminUsername:  v.GetString("admin_username"),
		AdminPassword:  v.GetString("admin_password"),
		GinMode:        v.GetString("gin_mode"),
		LogLevel:       v.GetString("log_level"),
	}

	secret := v.GetString("secret_key")
	if secret == "" {
		secret = v.GetString("jwt_secret")
	}
	if secret == "" {
		generated, err := randomSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
		cfg.SecretIsRandom = true
	}
	cfg.JWTSecret = []byte(secret)

	if cfg.TokenTTL <= 0 {
		return nil, errors.Errorf("token_ttl must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, errors.Errorf("max_upload_bytes must be positive, got %d", cfg.MaxUploadBytes)
	}
	return cfg, nil
}

// Dialect splits DATABASE_URL into a driver name and the DSN that driver expects.
func (c *Config) Dialect() (string, string) {
	url := c.DatabaseURL
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, url
	case strings.HasPrefix(url, "sqlite:///"):
		return DialectSQLite, strings.TrimPrefix(url, "sqlite:///")
	case strings.HasPrefix(url, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(url, "sqlite://")
	default:
		return DialectSQLite, url
	}
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate signing secret")
	}
	return hex.EncodeToString(buf), nil
}
