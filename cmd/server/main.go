// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/config"
	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/persistence"
	"github.com/javajoker/marketplace/internal/router"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	setupLogging(cfg)

	// Initialize storage backend
	backend, err := persistence.Open(cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize storage: ", err)
	}
	defer backend.Close()

	// Hydrate the session stores
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	sess, err := store.Open(ctx, store.Options{
		Backend: backend,
		Timeout: cfg.Storage.WriteTimeout,
		Identity: store.IdentityOptions{
			AdminEmail:    cfg.Session.AdminEmail,
			AdminPassword: cfg.Session.AdminPassword,
			DemoEmails: map[models.Role]string{
				models.RoleShopper: cfg.Session.DemoShopperEmail,
				models.RoleTrader:  cfg.Session.DemoTraderEmail,
			},
		},
		Seed:         store.DefaultSeed(),
		KeepSignedIn: cfg.Session.KeepSignedIn,
	})
	cancel()
	if err != nil {
		logrus.Fatal("Failed to open session: ", err)
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}

	events := services.NewEventPublisher(cfg.Kafka)
	defer events.Close()

	if !cfg.Session.AdjustInventory {
		logrus.Warn("Checkout does not adjust stock or sold counts (CHECKOUT_ADJUST_INVENTORY=false)")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(sess, cfg, events)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}

	// Ending the process ends the session.
	if err := sess.Close(); err != nil {
		logrus.WithError(err).Error("Failed to close session")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
