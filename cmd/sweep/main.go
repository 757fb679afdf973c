package main

import (
	"context"
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Usage: sweep [YYYY-MM-DD]. The date defaults to today in the hotel time zone.
func main() {
	cfg := config.Get()

	logger.Init(cfg, logger.ComponentSweep)

	date := ""
	if len(os.Args) > 1 {
		date = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := di.InitializeSweeper().Run(ctx, date); err != nil {
		log.Fatal().Err(err).Msg("sweep failed")
	}

	log.Info().Msg("sweep finished")
}
