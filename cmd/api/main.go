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

	"github.com/zhouzirui/z-ledger/backend/internal/config"
	"github.com/zhouzirui/z-ledger/backend/internal/demo"
	"github.com/zhouzirui/z-ledger/backend/internal/handler"
	"github.com/zhouzirui/z-ledger/backend/internal/logger"
	"github.com/zhouzirui/z-ledger/backend/internal/metrics"
	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
	"github.com/zhouzirui/z-ledger/backend/internal/service/events"
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

	observers := record.Observers{record.NewLogObserver(logger.New(cfg.Log))}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.New()
		observers = append(observers, collector)
		log.Println("metrics endpoint enabled at /metrics")
	}

	var hub *events.Hub
	if cfg.Events.Enabled {
		hub = events.NewHub(cfg.Events.Buffer)
		observers = append(observers, hub)
		log.Printf("event feed enabled (buffer=%d)", cfg.Events.Buffer)
	}

	services := handler.NewServices(observers)
	if cfg.SeedDemo {
		if err := demo.Load(ctx, services.Contacts, services.Books, services.Shopping, services.Tasks); err != nil {
			log.Fatalf("failed to seed demo records: %v", err)
		}
		log.Println("demo records loaded")
	}

	router := handler.NewRouter(services, hub, collector)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("record manager listening on %s", addr)
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
