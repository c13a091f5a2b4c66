package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gwi.com/message-service/internal/api"
	"gwi.com/message-service/internal/config"
	"gwi.com/message-service/internal/core"
	"gwi.com/message-service/internal/store"
)

func main() {
	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	migrateOnly := flag.Bool("migrate", false, "Create the database schema and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Debug() {
		log.Println("Service starting in DEBUG mode")
	}

	// Opened once and shared by every request for the life of the process.
	dbStore, err := store.NewSQLStore(context.Background(), store.Options{
		Driver:             cfg.DatabaseDriver,
		DSN:                cfg.DatabaseURL,
		MaxOpenConns:       cfg.MaxOpenConns,
		EnforceForeignKeys: cfg.EnforceForeignKeys,
		Debug:              cfg.Debug(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()

	if *migrateOnly {
		log.Printf("Schema is up to date for %s. Exiting.", cfg.DatabaseDriver)
		return
	}

	messagingService := core.NewMessagingService(dbStore)
	apiHandler := api.NewAPIHandler(messagingService)
	router := api.NewRouter(apiHandler)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting gracefully")
}
