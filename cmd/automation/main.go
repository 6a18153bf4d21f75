package main

// Run one automation pass for a single user from the command line:
//   go run ./cmd/automation -user <user-id>

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"autofill-backend/internal/bootstrap"
	"autofill-backend/internal/shared/config"
)

func main() {
	userID := flag.String("user", "", "user ID to run form automation for")
	flag.Parse()
	if *userID == "" {
		log.Printf("usage: automation -user <user-id>")
		os.Exit(2)
	}

	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := app.AutomationService.Run(ctx, *userID)
	if err != nil {
		log.Fatalf("automation run failed: %v", err)
	}
	log.Printf("%s: %s", result.Status, result.Message)
}
