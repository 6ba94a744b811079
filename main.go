package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jghoshh/virtuo-push/config"
	"github.com/jghoshh/virtuo-push/engine"
	"github.com/jghoshh/virtuo-push/lib/logger"
	"github.com/jghoshh/virtuo-push/push"
	"github.com/jghoshh/virtuo-push/server"
	"github.com/jghoshh/virtuo-push/storage"
)

func main() {
	// Load the .env file
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStorage(cfg.DBName, cfg.MongoURI)
	if err != nil {
		log.Fatal("storage init failed", zap.Error(err))
	}
	defer func() { _ = store.Disconnect() }()

	sender, err := push.NewFCMSender(ctx, cfg.FirebaseCredentials)
	if err != nil {
		log.Fatal("push sender init failed", zap.Error(err))
	}

	eng := engine.New(store, sender, log, engine.Options{
		DigestTime: cfg.DigestTime,
		AppURL:     cfg.AppURL,
		Workers:    cfg.Workers,
	})

	srv := server.New(cfg.HTTPAddr, eng)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", zap.Error(err))
		}
	}()

	log.Info("starting reminder engine",
		zap.String("digest_time", cfg.DigestTime),
		zap.Duration("poll_interval", cfg.PollInterval),
	)
	eng.Run(ctx, cfg.PollInterval)

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Warn("http server shutdown error", zap.Error(err))
	}
}
