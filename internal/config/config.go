// config — загрузка конфигурации портала.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// Перед чтением подхватывается ./.env (godotenv); уже выставленные переменные окружения
// им не перетираются.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Драйверы хранилища учётных данных.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Backend  BackendConfig `yaml:"backend"`
	Session  SessionConfig `yaml:"session"`
	Storage  StorageConfig `yaml:"storage"`
	Admin    AdminConfig   `yaml:"admin"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — общий дедлайн входящего запроса и дедлайн одного вызова бэкенда.
// Backend=0 отключает таймаут исходящих вызовов.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
	Backend time.Duration `yaml:"backend" env:"BACKEND_TIMEOUT" env-default:"10s"`
}

// HTTPConfig — публичный HTTP-сервер портала.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// BackendConfig — REST-бэкенд сервиса знакомств.
// AdminToken — bearer, с которым портал ходит в админские ручки бэкенда.
type BackendConfig struct {
	BaseURL    string `yaml:"base_url"    env:"BACKEND_BASE_URL"    env-default:"http://localhost:5000/api"`
	UserAgent  string `yaml:"user_agent"  env:"BACKEND_USER_AGENT"  env-default:"matrimony-portal"`
	AdminToken string `yaml:"admin_token" env:"BACKEND_ADMIN_TOKEN"`
}

// SessionConfig — cookie сессии и проверка токена.
// Пустой JWTSecret означает разбор claims без проверки подписи (только для local/dev).
type SessionConfig struct {
	CookieName   string        `yaml:"cookie_name"   env:"SESSION_COOKIE_NAME"   env-default:"sid"`
	CookieSecure bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	TTL          time.Duration `yaml:"ttl"           env:"SESSION_TTL"           env-default:"24h"`
	JWTSecret    string        `yaml:"jwt_secret"    env:"SESSION_JWT_SECRET"`
	JWTIssuer    string        `yaml:"jwt_issuer"    env:"SESSION_JWT_ISSUER"`
}

// StorageConfig — где хранится учётка сессии.
type StorageConfig struct {
	Driver      string `yaml:"driver"       env:"STORAGE_DRIVER" env-default:"memory"`
	KeyPrefix   string `yaml:"key_prefix"   env:"STORAGE_KEY_PREFIX" env-default:"portal:cred:"`
	RedisURL    string `yaml:"redis_url"    env:"REDIS_URL"`
	PostgresURL string `yaml:"postgres_url" env:"DATABASE_URL"`
	MongoURL    string `yaml:"mongo_url"    env:"MONGO_URL"`
	// JanitorPeriod — период очистки истёкших учёток (memory, postgres); 0 — выключено.
	JanitorPeriod time.Duration `yaml:"janitor_period" env:"STORAGE_JANITOR_PERIOD" env-default:"10m"`
}

// AdminConfig — учётка админ-панели. Пароль хранится только bcrypt-хэшем.
// Оба поля пустые — вход в админку выключен.
type AdminConfig struct {
	Email        string `yaml:"email"         env:"ADMIN_EMAIL"`
	PasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
}

// Enabled сообщает, сконфигурирован ли вход в админ-панель.
func (a AdminConfig) Enabled() bool { return a.Email != "" && a.PasswordHash != "" }

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	readFile := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, cfg.validate()
	}

	// 1) --config
	if path != "" {
		return readFile(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return readFile(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return readFile("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, cfg.validate()
}

// loadDotEnv подхватывает .env, если он есть. Отсутствие файла — не ошибка.
func loadDotEnv(p string) error {
	if _, err := os.Stat(p); err != nil {
		return nil
	}

	if err := godotenv.Load(p); err != nil {
		return fmt.Errorf("failed to load %s: %w", p, err)
	}

	return nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute URL")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage.redis_url is required for driver %q", c.Storage.Driver)
		}
	case DriverPostgres:
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("storage.postgres_url is required for driver %q", c.Storage.Driver)
		}
	case DriverMongo:
		if c.Storage.MongoURL == "" {
			return fmt.Errorf("storage.mongo_url is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}

	if c.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name is required")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be > 0")
	}

	if (c.Admin.Email == "") != (c.Admin.PasswordHash == "") {
		return fmt.Errorf("admin.email and admin.password_hash must be set together")
	}

	if c.Timeouts.Backend < 0 || c.Timeouts.Service < 0 {
		return fmt.Errorf("timeouts must be >= 0")
	}

	return nil
}
