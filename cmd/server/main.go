package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"skybooker/internal/config"
	"skybooker/internal/engine"
	"skybooker/internal/handlers"
	"skybooker/internal/router"
	"skybooker/internal/store"
	"skybooker/internal/websocket"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()

	backend, closeBackend, err := openBackend(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer closeBackend()

	st := store.New(backend, log)
	if err := st.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	eng := engine.New(st, log)

	hub := websocket.NewHub(log)
	go hub.Run()

	h := handlers.NewHandler(eng, hub)
	r := router.New(h, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"backend": cfg.Store.Backend,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("server stopped")
}

func openBackend(ctx context.Context, cfg config.StoreConfig) (store.Backend, func(), error) {
	switch cfg.Backend {
	case "file":
		b, err := store.NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return b, func() {}, nil
	case "postgres":
		b, err := store.NewPostgresBackend(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case "redis":
		b, err := store.NewRedisBackend(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { b.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
