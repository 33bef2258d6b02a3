package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/BotTracker/pkg/config"
	"github.com/NeuralTrust/BotTracker/pkg/dependency_container"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/NeuralTrust/BotTracker/pkg/infra/database"
	infraLogger "github.com/NeuralTrust/BotTracker/pkg/infra/logger"
	_ "github.com/NeuralTrust/BotTracker/pkg/infra/migrations"
	"github.com/NeuralTrust/BotTracker/pkg/infra/prometheus"
	"github.com/NeuralTrust/BotTracker/pkg/server"
	"github.com/NeuralTrust/BotTracker/pkg/server/router"
	"github.com/NeuralTrust/BotTracker/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const createAdminCommand = "create-admin"

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger("tracker")

	if err := config.Load("./config"); err != nil {
		logger.Warn(err.Error())
	}
	cfg := config.GetConfig()
	if cfg.Auth.SecretKey == "" {
		logger.Fatal("auth.secret_key must be set")
	}

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:                   cfg,
		Logger:                logger,
		DB:                    db,
		EventsRegistry:        event.Registry,
		InitializeMemoryCache: dependency_container.InitializeMemoryCache,
	})
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == createAdminCommand {
		if err := createAdmin(container, logger, os.Args[2:]); err != nil {
			logger.WithError(err).Fatal("failed to create admin")
		}
		return
	}

	if cfg.Metrics.Enabled {
		prometheus.Initialize(prometheus.DefaultMetricsConfig())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	container.Start(ctx, cfg)

	srv := server.NewAPIServer(cfg, logger, router.NewAPIRouter(
		container.MiddlewareTransport,
		container.HandlerTransport,
		container.WSHandlerTransport,
		cfg,
	))

	logger.WithField("version", version.Version).Info("bot tracker starting")
	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
	}
	cancel()
	container.Close()
	logger.Info("server gracefully stopped")
}

func createAdmin(container *dependency_container.Container, logger *logrus.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: %s <email> <password>", createAdminCommand)
	}
	u, created, err := container.AuthService.EnsureSuperAdmin(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"user_id": u.ID,
		"email":   u.Email,
		"created": created,
	}).Info("super admin ready")
	return nil
}
