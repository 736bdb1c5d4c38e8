package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-renamer-be/internal/bootstrap"
	"ai-renamer-be/internal/config"
	"ai-renamer-be/internal/server"
	"ai-renamer-be/internal/tracer"
	"ai-renamer-be/pkg/database"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	dbOpts := database.DefaultOptions()
	dbOpts.Debug = cfg.App.Environment == "development"
	gormDB, err := database.Open(cfg.Database.Connection, dbOpts)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start Background Services
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		container.WebSocketHub.Run(ctx)
		return nil
	})
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start notification consumer: %v", err)
	}
	if container.NotificationService != nil {
		if err := container.NotificationService.Start(ctx); err != nil {
			container.Logger.Warn("Main", "Event relay disabled", map[string]interface{}{"error": err.Error()})
		}
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)
	g.Go(srv.Run)
	g.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
