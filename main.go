package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/haikuowuya/Rosie/config"
	"github.com/haikuowuya/Rosie/core"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to set up services:", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Received shutdown signal, stopping services...")

	cancel()
	registry.StopAll()
}
