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

	"github.com/joho/godotenv"

	"github.com/coinbuddy/backend/internal/config"
	"github.com/coinbuddy/backend/internal/handler"
	"github.com/coinbuddy/backend/internal/market"
	"github.com/coinbuddy/backend/internal/model/intent"
	convoservice "github.com/coinbuddy/backend/internal/service/convo"
	"github.com/coinbuddy/backend/internal/service/resolver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	table, err := loadIntents(cfg.IntentsFile)
	if err != nil {
		log.Fatalf("failed to load intent table: %v", err)
	}

	client := market.NewClient(cfg.Market.BaseURL, time.Duration(cfg.Market.TimeoutSeconds)*time.Second)
	catalog := market.NewCatalog(client)

	store := convoservice.NewMemoryStore()
	engine := convoservice.NewEngine(store, table, resolver.New(catalog), catalog, convoservice.Providers{
		Prices:   client,
		Market:   client,
		Trending: client,
	})

	router := handler.NewRouter(store, engine, table)

	startServer(ctx, cfg.Server, router)
}

func loadIntents(path string) (*intent.Table, error) {
	if path != "" {
		log.Printf("loading intent table from %s", path)
		return intent.LoadFile(path)
	}
	return intent.NewTable(intent.Seed())
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("CoinBuddy backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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
