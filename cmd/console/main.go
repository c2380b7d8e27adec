package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/prestigesms/sms-console/internal/console/app"
	"github.com/prestigesms/sms-console/internal/console/provider"
	"github.com/prestigesms/sms-console/internal/console/registry"
	consolepg "github.com/prestigesms/sms-console/internal/console/repository/postgres"
	consolehttp "github.com/prestigesms/sms-console/internal/console/transport/http"
	"github.com/prestigesms/sms-console/internal/platform/config"
	"github.com/prestigesms/sms-console/internal/platform/database"
	"github.com/prestigesms/sms-console/internal/platform/logger"
)

const serviceName = "console"

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("SMS console starting...", "port", cfg.ServerPort)

	dbPool, err := database.NewDBPool(context.Background(), cfg.PostgresDSN)
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	appLogger.Info("Connected to PostgreSQL database")

	contactRepo := consolepg.NewPgContactRepository(dbPool, appLogger)
	messageRepo := consolepg.NewPgMessageRepository(dbPool, appLogger)
	auditRepo := consolepg.NewPgActionLogRepository(dbPool, appLogger)

	lineRegistry := registry.New(cfg.BusinessLines())
	for _, line := range lineRegistry.Lines() {
		appLogger.Info("Configured business line", "name", line.Name, "number", line.Number)
	}

	telnyx := provider.NewTelnyxProvider(appLogger, cfg.TelnyxAPIURL, cfg.TelnyxAPIKey, nil)

	sendService := app.NewSendService(lineRegistry, telnyx, messageRepo, contactRepo, auditRepo, appLogger)
	webhookService := app.NewWebhookService(lineRegistry, messageRepo, contactRepo, auditRepo, appLogger)
	directoryService := app.NewDirectoryService(lineRegistry, contactRepo, messageRepo, auditRepo, appLogger)

	sessions := consolehttp.NewSessionManager(cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)

	router := consolehttp.NewRouter(consolehttp.RouterConfig{
		Sender:    sendService,
		Processor: webhookService,
		Directory: directoryService,
		Sessions:  sessions,
		PIN:       cfg.SendPIN,
		PINHash:   cfg.SendPINHash,
		Logger:    appLogger,
	})

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.ServerPort), Handler: router}
	appLogger.Info(fmt.Sprintf("SMS console listening on port %d", cfg.ServerPort))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to serve", "error", err)
		}
	}()

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	<-quitChan
	appLogger.Info("Shutdown signal received, shutting down HTTP server...")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err)
	} else {
		appLogger.Info("HTTP server shut down gracefully.")
	}
	appLogger.Info("SMS console shut down.")
}
