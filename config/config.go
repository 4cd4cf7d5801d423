package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	// Основные настройки приложения
	App AppConfig `json:"app"`

	// Встроенное хранилище
	Storage StorageConfig `json:"storage"`

	// Сессии
	Session SessionConfig `json:"session"`

	// Телеметрия
	Telemetry TelemetryConfig `json:"telemetry"`
}

type AppConfig struct {
	Env   string `json:"env"`
	Debug bool   `json:"debug"`

	// Искусственная задержка перед завершением мутаций корзины и
	// каталогов. Не отменяется и всегда завершается успешно.
	SimulatedLatency time.Duration `json:"simulated_latency"`
}

type StorageConfig struct {
	Path string `json:"path"`
}

type SessionConfig struct {
	TokenSecret string        `json:"token_secret"`
	TokenTTL    time.Duration `json:"token_ttl"`
	Issuer      string        `json:"issuer"`

	// Общий демо-пароль для предустановленных аккаунтов
	DemoPassword string `json:"demo_password"`
}

type TelemetryConfig struct {
	RefreshInterval time.Duration `json:"refresh_interval"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл если он существует
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	config := &Config{
		App: AppConfig{
			Env:              getEnv("APP_ENV", "development"),
			Debug:            getEnvBool("DEBUG_MODE", false),
			SimulatedLatency: getEnvDuration("SIMULATED_LATENCY", 0),
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", "fleetmon.db"),
		},
		Session: SessionConfig{
			TokenSecret:  getEnv("SESSION_TOKEN_SECRET", "fleetmon-demo-secret"),
			TokenTTL:     getEnvDuration("SESSION_TOKEN_TTL", 24*time.Hour),
			Issuer:       getEnv("SESSION_ISSUER", "fleetmon"),
			DemoPassword: getEnv("DEMO_PASSWORD", "password"),
		},
		Telemetry: TelemetryConfig{
			RefreshInterval: getEnvDuration("TELEMETRY_REFRESH_INTERVAL", 30*time.Second),
		},
	}

	// Валидация критически важных настроек
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	// Проверяем обязательные поля для продакшена
	if c.App.Env == "production" {
		if c.Session.TokenSecret == "" || c.Session.TokenSecret == "fleetmon-demo-secret" {
			return fmt.Errorf("SESSION_TOKEN_SECRET is required in production")
		}
		if len(c.Session.TokenSecret) < 32 {
			return fmt.Errorf("SESSION_TOKEN_SECRET must be at least 32 characters long")
		}
	}

	// Проверяем в любом окружении
	if c.Storage.Path == "" {
		return fmt.Errorf("STORAGE_PATH cannot be empty")
	}
	if c.Telemetry.RefreshInterval <= 0 {
		return fmt.Errorf("TELEMETRY_REFRESH_INTERVAL must be positive")
	}
	if c.Session.TokenTTL <= 0 {
		return fmt.Errorf("SESSION_TOKEN_TTL must be positive")
	}

	return nil
}

// IsDevelopment проверяет, запущено ли приложение в режиме разработки
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction проверяет, запущено ли приложение в продакшене
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LogConfig выводит конфигурацию в лог (без секретных данных)
func (c *Config) LogConfig() {
	log.Printf("=== Application Configuration ===")
	log.Printf("Environment: %s", c.App.Env)
	log.Printf("Storage Path: %s", c.Storage.Path)
	log.Printf("Session Issuer: %s", c.Session.Issuer)
	log.Printf("Session TTL: %v", c.Session.TokenTTL)
	log.Printf("Telemetry Refresh: %v", c.Telemetry.RefreshInterval)
	log.Printf("Simulated Latency: %v", c.App.SimulatedLatency)
	log.Printf("Debug Mode: %t", c.App.Debug)
	log.Printf("================================")
}

// Вспомогательные функции для получения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		log.Printf("Warning: Invalid boolean value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: Invalid duration value for %s: %s, using default: %v", key, value, defaultValue)
	}
	return defaultValue
}
