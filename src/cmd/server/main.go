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

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/banking-frontend/src/internal/adapter/bankapi"
	"github.com/api-sage/banking-frontend/src/internal/adapter/http/controller"
	"github.com/api-sage/banking-frontend/src/internal/adapter/http/router"
	"github.com/api-sage/banking-frontend/src/internal/config"
	"github.com/api-sage/banking-frontend/src/internal/logger"
	"github.com/api-sage/banking-frontend/src/internal/usecase/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("configure logger: %v", err)
	}

	client := bankapi.New(bankapi.Config{
		BaseURL: cfg.BankingAPIURL,
		Timeout: cfg.BackendTimeout,
	})
	sessions, err := services.NewSessionStore(client, cfg.SessionCapacity)
	if err != nil {
		log.Fatalf("create session store: %v", err)
	}

	formController := controller.NewFormController(sessions, cfg.BankingAPIURL)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.New(formController),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", logger.Fields{
			"addr":          cfg.ListenAddr,
			"bankingApiUrl": cfg.BankingAPIURL,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("server shutting down", nil)
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", err, nil)
		os.Exit(1)
	}
}
