package main

import (
	"context"
	"log"
	"os"

	"github.com/vadim/contentdesk/internal/app"
	"github.com/vadim/contentdesk/internal/config"
)

func main() {
	cfg := config.MustLoad()

	ctx := context.Background()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("failed to initialize application: %v", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		log.Printf("application error: %v", err)
		os.Exit(1)
	}
}
