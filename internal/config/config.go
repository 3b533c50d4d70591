package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kevin07696/cybersource-service/internal/domain/models"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Checkout CheckoutConfig
	Secrets  SecretsConfig
	Logger   LoggerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int
	Host        string
	MetricsPort int
}

// CheckoutConfig holds the hosted checkout profile configuration
type CheckoutConfig struct {
	// Variant selects the gateway integration: "sop" (legacy order
	// page) or "secure_acceptance"
	Variant string

	// Mode selects production or test endpoints
	Mode models.CheckoutMode

	Account     string // merchant id / access key
	Credential2 string // serial number / profile id

	// SecretPath is the path the configured secret source resolves to
	// the HMAC key (shared secret / secret key)
	SecretPath string
}

// SecretsConfig selects and configures the secret source backend
type SecretsConfig struct {
	Backend string // local, aws, vault

	LocalBasePath string // local backend: directory holding secret files

	AWSRegion string // aws backend

	VaultAddress string // vault backend
	VaultToken   string
	VaultMount   string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			MetricsPort: getEnvAsInt("METRICS_PORT", 9090),
		},
		Checkout: CheckoutConfig{
			Variant:     getEnv("CHECKOUT_VARIANT", "secure_acceptance"),
			Mode:        models.CheckoutMode(getEnv("CHECKOUT_MODE", "test")),
			Account:     getEnv("CHECKOUT_ACCOUNT", ""),
			Credential2: getEnv("CHECKOUT_CREDENTIAL2", ""),
			SecretPath:  getEnv("CHECKOUT_SECRET_PATH", ""),
		},
		Secrets: SecretsConfig{
			Backend:       getEnv("SECRET_BACKEND", "local"),
			LocalBasePath: getEnv("SECRET_LOCAL_PATH", "./secrets"),
			AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
			VaultAddress:  getEnv("VAULT_ADDR", ""),
			VaultToken:    getEnv("VAULT_TOKEN", ""),
			VaultMount:    getEnv("VAULT_MOUNT", "secret"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields
	switch cfg.Checkout.Mode {
	case models.ModeProduction, models.ModeTest:
	default:
		return nil, fmt.Errorf("CHECKOUT_MODE set to an invalid value: %q", cfg.Checkout.Mode)
	}
	switch cfg.Checkout.Variant {
	case "sop", "secure_acceptance":
	default:
		return nil, fmt.Errorf("CHECKOUT_VARIANT set to an invalid value: %q", cfg.Checkout.Variant)
	}
	if cfg.Checkout.Account == "" {
		return nil, fmt.Errorf("CHECKOUT_ACCOUNT is required")
	}
	if cfg.Checkout.Credential2 == "" {
		return nil, fmt.Errorf("CHECKOUT_CREDENTIAL2 is required")
	}
	if cfg.Checkout.SecretPath == "" {
		return nil, fmt.Errorf("CHECKOUT_SECRET_PATH is required")
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
