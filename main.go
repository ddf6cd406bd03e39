package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"docstore/config"
	"docstore/config/database"
	"docstore/pkg/logger"
	"docstore/router"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	logger.Init()
	defer logger.Log.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Sugar.Fatalf("Invalid configuration: %v", err)
	}

	// Fatal if the store is unreachable or the schema cannot be verified:
	// serving without durable storage would silently break the contract.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Sugar.Fatalf("Failed to initialize storage: %v", err)
	}
	defer db.Close()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Setup(db),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Sugar.Infof("Document store listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Sugar.Errorf("Server shutdown: %v", err)
	}
}
