package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/piclink-games/piclink-backend/app"
	"github.com/piclink-games/piclink-backend/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Printf("Application stopped with error: %v", err)
	}

	if err := application.Close(context.Background()); err != nil {
		log.Printf("Shutdown finished with errors: %v", err)
	}
}
