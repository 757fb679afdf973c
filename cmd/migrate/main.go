package main

import (
	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const argLength = 2

// Usage: migrate up|down|step-up|drop|version
func main() {
	cfg := config.Get()

	logger.Init(cfg, logger.ComponentMigrate)

	if len(os.Args) < argLength {
		log.Fatal().Msg("migration action is required: up, down, step-up, drop or version")
	}

	if err := helper.Run(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
