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

	"github.com/gospia/gospia/backend/internal/config"
	"github.com/gospia/gospia/backend/internal/handler"
	"github.com/gospia/gospia/backend/internal/model/persona"
	accountservice "github.com/gospia/gospia/backend/internal/service/account"
	chatservice "github.com/gospia/gospia/backend/internal/service/chat"
	"github.com/gospia/gospia/backend/internal/service/resolver"
	voiceservice "github.com/gospia/gospia/backend/internal/service/voice"
	"github.com/gospia/gospia/backend/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	catalog, err := persona.NewMemoryCatalog(persona.Seed())
	if err != nil {
		log.Fatalf("invalid persona catalog: %v", err)
	}

	dbPath := cfg.Snapshot.DBPath
	if dbPath == "" {
		dbPath, err = storage.DefaultDBPath()
		if err != nil {
			log.Fatalf("failed to resolve snapshot db path: %v", err)
		}
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open snapshot store at %s: %v", dbPath, err)
	}
	defer store.Close()
	log.Printf("snapshot store opened at %s", dbPath)

	accountSvc := accountservice.NewService(catalog, store)
	chatSvc := chatservice.NewService()
	resolverSvc := resolver.NewService(cfg.ResolverDelay())

	var voiceSvc *voiceservice.Service
	if cfg.Voice.Enabled {
		voiceSvc = voiceservice.NewService(voiceservice.Config{
			Enabled:  true,
			Language: cfg.Voice.Language,
			Rate:     cfg.Voice.Rate,
		})
		log.Println("voice service initialized successfully")
	} else {
		log.Println("voice service disabled by configuration")
	}

	router, err := handler.NewRouter(handler.Deps{
		Catalog:               catalog,
		AccountSvc:            accountSvc,
		ChatSvc:               chatSvc,
		ResolverSvc:           resolverSvc,
		VoiceSvc:              voiceSvc,
		BillingProcessingTime: time.Second,
	})
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	startServer(ctx, cfg, router)
}

func startServer(ctx context.Context, cfg *config.Config, router http.Handler) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	log.Printf("GospIA backend listening on %s", srv.Addr)
	if err := runServer(ctx, srv, time.Duration(cfg.Server.ShutdownTimeout)*time.Second); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
