package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"belli/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("shutdown cleanup failed: %v", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("api run failed: %v", err)
	}
}
