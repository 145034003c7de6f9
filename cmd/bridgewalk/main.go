package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mnagpal/bridgewalk/internal/admin"
	"github.com/mnagpal/bridgewalk/internal/database"
	"github.com/mnagpal/bridgewalk/internal/logging"
	"github.com/mnagpal/bridgewalk/internal/server"
)

// defaultAdminPassword matches the demo credential shipped with the
// mobile client. Override it with BRIDGEWALK_ADMIN_PASSWORD.
const defaultAdminPassword = "Reddazzler@773"

func main() {
	port := os.Getenv("BRIDGEWALK_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("BRIDGEWALK_DB_PATH")
	if dbPath == "" {
		dbPath = "bridgewalk.db"
	}

	logger := logging.Setup(os.Getenv("BRIDGEWALK_LOG_LEVEL"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	adminPassword := os.Getenv("BRIDGEWALK_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = defaultAdminPassword
		logger.Warn("using default admin password; set BRIDGEWALK_ADMIN_PASSWORD")
	}
	verifier, err := admin.NewBcryptVerifier(adminPassword)
	if err != nil {
		log.Fatalf("failed to set up admin verifier: %v", err)
	}
	gate := admin.NewGate(verifier)

	srv := server.New(db, gate, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Periodic cleanup of expired sessions and stale rate-limit entries.
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("session cleanup", "error", err)
				} else if n > 0 {
					logger.Info("session cleanup", "deleted", n)
				}
				srv.RateLimiter().Cleanup()
			case <-cleanupDone:
				return
			}
		}
	}()

	go func() {
		logger.Info("bridgewalk listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	close(cleanupDone)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
