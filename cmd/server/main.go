package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/cybersource-service/internal/adapters/cybersource"
	"github.com/kevin07696/cybersource-service/internal/adapters/ports"
	"github.com/kevin07696/cybersource-service/internal/adapters/secrets"
	"github.com/kevin07696/cybersource-service/internal/config"
	checkoutHandler "github.com/kevin07696/cybersource-service/internal/handlers/checkout"
	"github.com/kevin07696/cybersource-service/pkg/observability"
)

func main() {
	// Initialize logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting hosted checkout service",
		zap.String("version", "0.1.0"),
	)

	// Load configuration from environment
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Resolve the profile HMAC secret through the configured backend
	secretSource, err := initSecretSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize secret source", zap.Error(err))
	}

	secret, err := secretSource.GetSecret(ctx, cfg.Checkout.SecretPath)
	if err != nil {
		logger.Fatal("Failed to resolve checkout secret", zap.Error(err))
	}

	// Build the hosted checkout adapter for the configured variant
	profile := cybersource.ProfileConfig{
		Account:     cfg.Checkout.Account,
		Credential2: cfg.Checkout.Credential2,
		Secret:      secret.Value,
	}

	var adapter ports.HostedCheckoutAdapter
	switch cfg.Checkout.Variant {
	case "sop":
		adapter = cybersource.NewSOPAdapter(profile, cfg.Checkout.Mode, logger)
	case "secure_acceptance":
		adapter = cybersource.NewSecureAcceptanceAdapter(profile, cfg.Checkout.Mode, logger)
	}

	logger.Info("Hosted checkout adapter initialized",
		zap.String("variant", cfg.Checkout.Variant),
		zap.String("mode", string(cfg.Checkout.Mode)),
	)

	// HTTP surface
	formHdlr := checkoutHandler.NewFormHandler(adapter, cfg.Checkout.Variant, logger)
	notificationHdlr := checkoutHandler.NewNotificationHandler(adapter, cfg.Checkout.Variant, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/checkout/form", formHdlr.GetCheckoutForm)
	mux.HandleFunc("/api/v1/checkout/notification", notificationHdlr.HandleNotification)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	// Metrics and health server
	metricsServer := observability.StartMetricsServer(fmt.Sprintf("%d", cfg.Server.MetricsPort))
	logger.Info("Metrics server started",
		zap.Int("port", cfg.Server.MetricsPort),
	)

	go func() {
		logger.Info("HTTP server listening",
			zap.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := observability.ShutdownMetricsServer(metricsServer); err != nil {
		logger.Error("Metrics server shutdown failed", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

func initLogger() *zap.Logger {
	env := os.Getenv("ENVIRONMENT")

	if env == "production" {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		logger, _ := zapCfg.Build()
		return logger
	}

	logger, _ := zap.NewDevelopment()
	return logger
}

func initSecretSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.SecretSource, error) {
	switch cfg.Secrets.Backend {
	case "local":
		return secrets.NewLocalSource(cfg.Secrets.LocalBasePath, logger), nil
	case "aws":
		return secrets.NewAWSSource(ctx, secrets.DefaultAWSConfig(cfg.Secrets.AWSRegion), logger)
	case "vault":
		return secrets.NewVaultSource(secrets.DefaultVaultConfig(cfg.Secrets.VaultAddress, cfg.Secrets.VaultToken), logger)
	default:
		return nil, fmt.Errorf("SECRET_BACKEND set to an invalid value: %q", cfg.Secrets.Backend)
	}
}
