package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notez-be/internal/bootstrap"
	"notez-be/internal/config"
	"notez-be/internal/server"
	"notez-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Stores
	infra, err := bootstrap.OpenInfrastructure(ctx, cfg)
	if err != nil {
		log.Panicf("Unable to open infrastructure: %v", err)
	}
	defer infra.Close()

	// 3. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing, infra.Logger)
	defer shutdownTracer(context.Background())

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, infra)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	// 5. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		infra.Logger.Error("Main", "failed to start activity consumer", map[string]interface{}{
			"error": err,
		})
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
			infra.Logger.Warn("Main", "graceful shutdown failed", map[string]interface{}{"error": err})
		}
	}()

	if err := srv.Run(); err != nil {
		infra.Logger.Error("Main", "server stopped", map[string]interface{}{"error": err})
	}
}
