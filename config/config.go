package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port        string `yaml:"port"`
	BindAddress string `yaml:"bind_address"`
	GinMode     string `yaml:"gin_mode"`

	Database struct {
		Driver     string `yaml:"driver"`
		URL        string `yaml:"url"`
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		Name       string `yaml:"name"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		TokenTTL  string `yaml:"token_ttl"`
	} `yaml:"auth"`

	Admin struct {
		Email    string `yaml:"email"`
		Fullname string `yaml:"fullname"`
	} `yaml:"admin"`
}

// Load builds the configuration from defaults, then the optional YAML file at
// path, then environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			log.Printf("config file %s not found, using environment only", path)
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		Port:        "5000",
		BindAddress: "",
		GinMode:     "debug",
	}
	cfg.Database.Driver = DriverPostgres
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "spiritualgifts"
	cfg.Database.Password = "spiritualgifts"
	cfg.Database.Name = "spiritualgifts"
	cfg.Database.SQLitePath = "spiritualgifts.db"
	cfg.Redis.TTL = "1h"
	cfg.Auth.JWTSecret = "your-secret-key-change-in-production"
	cfg.Auth.TokenTTL = "168h"
	cfg.Admin.Email = "admin@spiritualgifts.com"
	cfg.Admin.Fullname = "Admin User"
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.BindAddress = getEnv("BIND_ADDRESS", cfg.BindAddress)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.URL = getEnv("DATABASE_URL", getEnv("POSTGRES_URL", cfg.Database.URL))
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SQLitePath = getEnv("SQLITE_PATH", cfg.Database.SQLitePath)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.Redis.DB = n
		} else {
			log.Printf("ignoring invalid REDIS_DB=%q: %v", raw, err)
		}
	}
	cfg.Redis.TTL = getEnv("DESCRIPTION_CACHE_TTL", cfg.Redis.TTL)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = getEnv("TOKEN_TTL", cfg.Auth.TokenTTL)

	cfg.Admin.Email = getEnv("DEFAULT_ADMIN_EMAIL", cfg.Admin.Email)
	cfg.Admin.Fullname = getEnv("DEFAULT_ADMIN_NAME", cfg.Admin.Fullname)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

func (c *Config) ListenAddr() string {
	return c.BindAddress + ":" + c.Port
}

func (c *Config) postgresDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.Database.Host, c.Database.User, c.Database.Password, c.Database.Name, c.Database.Port)
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.postgresDSN())
	case DriverSQLite:
		if dir := filepath.Dir(cfg.Database.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dialector = sqlite.Open(SQLiteDSN(cfg.Database.SQLitePath))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer; one connection keeps transactions from
		// failing with SQLITE_BUSY under concurrent requests.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// SQLiteDSN enables foreign keys and a busy timeout on a sqlite file or
// "file:" URI.
func SQLiteDSN(path string) string {
	return "file:" + filepath.ToSlash(path) + "?_foreign_keys=on&_busy_timeout=5000"
}

// InitRedis returns nil when no address is configured; callers treat a nil
// client as "cache disabled".
func InitRedis(cfg *Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
