package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/bowl-bot/app"
	"github.com/Black-And-White-Club/bowl-bot/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp()
	if err := application.Initialize(ctx, cfg); err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	runErr := application.Run(ctx)

	if err := application.Close(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if runErr != nil {
		log.Fatalf("App stopped with error: %v", runErr)
	}
	log.Println("Application shut down gracefully.")
}
