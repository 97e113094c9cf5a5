package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/cli"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/config"
	"github.com/dmitrijs2005/linkedin-clone/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	log := logging.Setup(os.Stderr, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
