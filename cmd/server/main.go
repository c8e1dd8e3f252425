package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"concert-registration/internal/config"
	"concert-registration/internal/notify"
	"concert-registration/internal/remote"
	"concert-registration/internal/server"
	"concert-registration/internal/service"
	"concert-registration/internal/session"
	"concert-registration/internal/sheets"
	"concert-registration/internal/storage"
	"concert-registration/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	backend, err := storage.NewFile(cfg.DataDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	records := store.New(backend)
	sessions := session.New(backend, session.Config{
		Admins:          cfg.Admins,
		MaxAttempts:     cfg.MaxAttempts,
		LockoutTime:     cfg.LockoutTime,
		SessionDuration: cfg.SessionDuration,
	})

	var rc remote.Client
	switch cfg.RemoteBackend {
	case "webapp":
		rc = remote.NewWebapp(cfg.WebappURL)
	case "sheets":
		rc, err = sheets.New(cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			log.Fatalf("sheets: %v", err)
		}
	}

	notifier, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("notify: %v", err)
	}

	svc := service.New(records, rc)
	httpSrv := server.New(cfg, svc, sessions, notifier)

	go func() {
		log.Printf("HTTP listening on %s (remote backend: %s)", cfg.HTTPAddr, cfg.RemoteBackend)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)

	log.Println("bye")
}
