package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/common/database"
)

const (
	defaultAPIBaseURL = "http://localhost:3000"
	defaultDriver     = "sqlite"
)

// APIConfig は予約APIへの接続設定です
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type Config struct {
	API            APIConfig
	DB             database.Config
	CommandTimeout time.Duration
	EnableTracing  bool
}

// LoadConfig は設定を読み込みます
// カレントディレクトリに .env があれば先に読み込み、既存の環境変数は上書きしません
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnvOrDefault("SBCNTR_API_BASE_URL", defaultAPIBaseURL), "/"),
			Timeout: time.Duration(getEnvAsIntOrDefault("SBCNTR_API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		DB: database.Config{
			Driver: getEnvOrDefault("SBCNTR_STORAGE_DRIVER", defaultDriver),
			DSN:    getEnvOrDefault("SBCNTR_STORAGE_DSN", defaultStoragePath()),
		},
		CommandTimeout: time.Duration(getEnvAsIntOrDefault("SBCNTR_COMMAND_TIMEOUT_SECONDS", 60)) * time.Second,
		EnableTracing:  false,
	}

	if err := ValidateBaseURL(cfg.API.BaseURL); err != nil {
		return nil, err
	}

	// 環境変数[SBCNTR_ENABLE_TRACING]を見てトレースを有効にする。対応しているTracingはAWS_XRAYのみ。
	// 環境変数[AWS_XRAY_SDK_DISABLED]がtrueの場合は必ずトレースを無効にする。
	enableKey := os.Getenv("SBCNTR_ENABLE_TRACING")
	if !sdkDisabled() && (strings.ToLower(enableKey) == "true" || enableKey == "1") {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "FALSE")
		cfg.EnableTracing = true
	} else {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "TRUE")
		cfg.EnableTracing = false
	}

	return cfg, nil
}

// SetBaseURL はCLIフラグなどで指定された接続先を検証して反映します
func (c *Config) SetBaseURL(raw string) error {
	baseURL := strings.TrimRight(raw, "/")
	if err := ValidateBaseURL(baseURL); err != nil {
		return err
	}
	c.API.BaseURL = baseURL
	return nil
}

// ValidateBaseURL は接続先がhttp/httpsの絶対URLであることを確認します
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid API base URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API base URL %q: must be an absolute http(s) URL", raw)
	}
	return nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".sbcntr", "storage.db")
	}
	return filepath.Join(home, ".sbcntr", "storage.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
		log.Printf("Environment variable %s is not a positive integer, using default value", key)
	}
	return defaultValue
}

// Check if SDK is disabled
func sdkDisabled() bool {
	disableKey := os.Getenv("AWS_XRAY_SDK_DISABLED")
	return strings.ToLower(disableKey) == "true"
}
