// Package config 從環境變數讀取服務設定
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 服務執行所需的全部設定
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	JWTExpiresIn    time.Duration
	RedisAddr       string
	RedisDB         int
	RedisPassword   string
	Port            string
	AppEnv          string
	LogLevel        string
	BcryptCost      int
	WorkerCount     int
	LoginRateLimit  int
	LoginRateWindow time.Duration
	ShutdownTimeout time.Duration
}

// Development 是否為開發環境，開發環境會在 500 回應中附上錯誤細節
func (c Config) Development() bool {
	return c.AppEnv == "development"
}

// Addr 伺服器監聽位址
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load 讀取並驗證環境變數
func Load() (Config, error) {
	var err error
	cfg := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Port:          getEnv("PORT", "8080"),
		AppEnv:        getEnv("APP_ENV", "production"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}

	if cfg.JWTExpiresIn, err = getEnvDuration("JWT_EXPIRES_IN", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = BcryptCost(); err != nil {
		return Config{}, err
	}
	if cfg.WorkerCount, err = getEnvInt("WORKER_COUNT", 1); err != nil {
		return Config{}, err
	}
	if cfg.LoginRateLimit, err = getEnvInt("LOGIN_RATE_LIMIT", 10); err != nil {
		return Config{}, err
	}
	if cfg.LoginRateWindow, err = getEnvDuration("LOGIN_RATE_WINDOW", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 檢查數值範圍
func (c Config) Validate() error {
	switch {
	case c.JWTExpiresIn <= 0:
		return fmt.Errorf("無效的 JWT_EXPIRES_IN: %s", c.JWTExpiresIn)
	case c.RedisDB < 0:
		return fmt.Errorf("無效的 REDIS_DB: %d", c.RedisDB)
	case c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost:
		return fmt.Errorf("無效的 BCRYPT_COST: %d", c.BcryptCost)
	case c.WorkerCount <= 0:
		return fmt.Errorf("無效的 WORKER_COUNT: %d", c.WorkerCount)
	case c.LoginRateLimit < 0:
		return fmt.Errorf("無效的 LOGIN_RATE_LIMIT: %d", c.LoginRateLimit)
	case c.LoginRateLimit > 0 && c.LoginRateWindow <= 0:
		return fmt.Errorf("無效的 LOGIN_RATE_WINDOW: %s", c.LoginRateWindow)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("無效的 SHUTDOWN_TIMEOUT: %s", c.ShutdownTimeout)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("無效的 PORT: %v", err)
	}
	return nil
}

const (
	defaultBcryptCost = 10
	minBcryptCost     = 4
	maxBcryptCost     = 31
)

// BcryptCost 讀取 BCRYPT_COST (預設 10)；服務與 createadmin 共用
func BcryptCost() (int, error) {
	cost, err := getEnvInt("BCRYPT_COST", defaultBcryptCost)
	if err != nil {
		return 0, err
	}
	if cost < minBcryptCost || cost > maxBcryptCost {
		return 0, fmt.Errorf("無效的 BCRYPT_COST: %d", cost)
	}
	return cost, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return d, nil
}

// ParseDuration 接受 time.ParseDuration 的格式，另外支援 "7d" 這種天數寫法
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
