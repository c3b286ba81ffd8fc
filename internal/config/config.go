package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Schema    SchemaConfig
	Artifacts ArtifactsConfig
	Logger    LoggerConfig
	CORS      CORSConfig
	Audit     AuditConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type SchemaConfig struct {
	Path string
}

type ArtifactsConfig struct {
	ModelPath     string
	TransformPath string
}

type LoggerConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AuditConfig controls the optional prediction audit trail. When disabled the
// service runs without a database.
type AuditConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c *AuditConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("SCHEMA_PATH", "configs/schema.yaml")
	v.SetDefault("MODEL_PATH", "models/model.json")
	v.SetDefault("TRANSFORM_PATH", "models/transform.json")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:8080,http://127.0.0.1:8080")
	v.SetDefault("AUDIT_ENABLED", false)
	v.SetDefault("AUDIT_DB_HOST", "localhost")
	v.SetDefault("AUDIT_DB_PORT", 5432)
	v.SetDefault("AUDIT_DB_USER", "postgres")
	v.SetDefault("AUDIT_DB_PASSWORD", "")
	v.SetDefault("AUDIT_DB_NAME", "treatment_scoring")
	v.SetDefault("AUDIT_DB_SSLMODE", "disable")
	v.SetDefault("AUDIT_DB_MAX_OPEN_CONNS", 4)
	v.SetDefault("AUDIT_DB_MAX_IDLE_CONNS", 1)
	v.SetDefault("AUDIT_DB_CONN_MAX_LIFETIME", "30m")

	// Env
	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("AUDIT_DB_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 30 * time.Minute
	}

	origins := make([]string, 0)
	for _, origin := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Schema: SchemaConfig{
			Path: v.GetString("SCHEMA_PATH"),
		},
		Artifacts: ArtifactsConfig{
			ModelPath:     v.GetString("MODEL_PATH"),
			TransformPath: v.GetString("TRANSFORM_PATH"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
		Audit: AuditConfig{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			Host:            v.GetString("AUDIT_DB_HOST"),
			Port:            v.GetInt("AUDIT_DB_PORT"),
			User:            v.GetString("AUDIT_DB_USER"),
			Password:        v.GetString("AUDIT_DB_PASSWORD"),
			Database:        v.GetString("AUDIT_DB_NAME"),
			SSLMode:         v.GetString("AUDIT_DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("AUDIT_DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("AUDIT_DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
	}

	return cfg, nil
}
