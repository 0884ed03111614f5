package main

import (
	"os"
	"os/signal"
	"syscall"

	"vivaham/internal/app"
	"vivaham/internal/config"
	"vivaham/internal/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}
	logger.InitFromConfig(cfg)

	// --- Application ---
	application, err := app.New(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.Close()

	if cfg.RabbitMQ.Consume {
		if err := application.StartConsumer(); err != nil {
			logger.Log.WithError(err).Error("Failed to start RabbitMQ consumer")
		}
	}

	// --- Start HTTP Server ---
	logger.Log.WithField("port", cfg.Port).Info("Starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Fiber.Listen(cfg.Port); err != nil {
			logger.Log.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-quit
	logger.Log.Info("Shutting down server...")

	if err := application.Fiber.Shutdown(); err != nil {
		logger.Log.WithError(err).Error("Error during Fiber shutdown")
	}
	logger.Log.Info("Server gracefully stopped")
}
