package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"careernest-backend/internal/config"
	"careernest-backend/internal/controller/file"
	"careernest-backend/internal/database"
	"careernest-backend/internal/server"
)

// @title CareerNest API
// @version 1.0
// @description Campus job board backend: companies, job listings, student applications and bookmarks.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}

	db, err := database.NewDBInstance(&cfg.Database)
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	var storage file.StorageClient
	if cfg.LogoBucket != "" {
		client, err := file.NewCloudStorageClient(cfg.LogoBucket)
		if err != nil {
			log.Fatalf("Cloud storage failed to initialize: %s", err)
		}
		storage = client
	} else {
		log.Println("LOGO_BUCKET is not set, logo uploads are disabled")
	}

	srv := server.NewServer(cfg, db, storage)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %s", err)
		}
	}()

	<-shutdownCtx.Done()
	stop()
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
