package logger

import (
	"hotel/config"
	"hotel/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	ComponentAPI     = "api"
	ComponentWorker  = "worker"
	ComponentSweep   = "sweep"
	ComponentMigrate = "migrate"
)

// Init points the global logger at stdout for one process of the service.
// Production writes JSON lines; other environments use the console writer.
func Init(cfg *config.Config, component string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level := Level(cfg.Server.LogLevel)
	zerolog.SetGlobalLevel(level)

	log.Logger = New(writer(cfg.Server.Env), cfg.App.Name, component)
	log.Debug().Str("loglevel", level.String()).Msg("logger initialized")
}

// New builds a logger tagged with the service name and the process component.
func New(out io.Writer, service, component string) zerolog.Logger {
	return zerolog.New(out).With().
		Timestamp().
		Str("service", service).
		Str("component", component).
		Logger()
}

// Level parses the configured level; an empty or unknown value means info.
func Level(value string) zerolog.Level {
	level, err := zerolog.ParseLevel(value)
	if err != nil || value == "" {
		return zerolog.InfoLevel
	}

	return level
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func writer(env string) io.Writer {
	if env == constant.ServerEnvProduction {
		return os.Stdout
	}

	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
}
