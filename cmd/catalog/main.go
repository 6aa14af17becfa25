package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"dragonfield.org/catalog-web/internal/browse"
	"dragonfield.org/catalog-web/internal/config"
	"dragonfield.org/catalog-web/internal/dbapi"
	"dragonfield.org/catalog-web/internal/httpserver"
	"dragonfield.org/catalog-web/internal/observability"
	appsession "dragonfield.org/catalog-web/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	hashKey := []byte(cfg.SessionKeys.HashKey)
	if len(hashKey) == 0 {
		// Sessions will not survive a restart without configured key material.
		logger.Warn("no session hash key configured, using an ephemeral key")
		hashKey = securecookie.GenerateRandomKey(32)
	}

	sessions, err := appsession.NewManager(appsession.Config{
		HashKey:  hashKey,
		BlockKey: blockKeyOrNil(cfg.SessionKeys.BlockKey),
	})
	if err != nil {
		logger.Fatal("init session manager", zap.Error(err))
	}

	service, err := dbapi.NewClient(cfg.APIBaseURL, nil, logger)
	if err != nil {
		logger.Fatal("init catalog client", zap.Error(err))
	}
	screens := browse.NewRegistry(service, cfg.ScreenIdle)

	srv := httpserver.New(httpserver.Config{
		Address:  cfg.Address,
		BasePath: cfg.BasePath,
		Service:  service,
		Screens:  screens,
		Sessions: sessions,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("catalog server listening",
		zap.String("address", cfg.Address),
		zap.String("base_path", cfg.BasePath),
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

func blockKeyOrNil(key string) []byte {
	if key == "" {
		return nil
	}
	return []byte(key)
}
