package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// DatabaseConfig selects the storage backend.
// Driver is one of "postgres", "sqlite" or "mongo".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"` // mongo database name
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

// Enabled reports whether exercise videos should be served from a bucket.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig holds the shared secret of the identity provider.
// Tokens are issued elsewhere; this service only verifies them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float32       `mapstructure:"temperature"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

var (
	ErrMissingJWTSecret = errors.New("jwt.secret (or SUPABASE_JWT_SECRET) must be set")
	ErrMissingGeminiKey = errors.New("gemini.api_key (or GOOGLE_API_KEY) must be set")
	ErrMissingDatabase  = errors.New("database.uri (or DATABASE_URL) must be set")
	ErrUnknownDriver    = errors.New("database.driver must be one of postgres, sqlite, mongo")
)

// LoadConfig reads configuration from file or environment variables.
// A .env file in path is loaded into the process environment first, without
// overriding variables that are already set.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(path + "/.env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, gemini.api_key -> GEMINI_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Names used by the hosted identity provider and model console.
	_ = v.BindEnv("jwt.secret", "JWT_SECRET", "SUPABASE_JWT_SECRET")
	_ = v.BindEnv("gemini.api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("database.uri", "DATABASE_URI", "DATABASE_URL")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.name", "virtual_coach")
	// Keys need a default for AutomaticEnv to feed them into Unmarshal.
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.url_expiry", "15m")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.timeout", "60s")
	v.SetDefault("gemini.temperature", 0.4)
	v.SetDefault("log.mode", "development")

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}

// Validate checks the settings without which the server cannot start.
func (c Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	if c.Gemini.APIKey == "" {
		errs = append(errs, ErrMissingGeminiKey)
	}
	if c.Database.URI == "" {
		errs = append(errs, ErrMissingDatabase)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite", "mongo":
	default:
		errs = append(errs, ErrUnknownDriver)
	}
	return errors.Join(errs...)
}
