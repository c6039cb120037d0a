package logger

import (
	"os"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/config"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	// Logger utilizável antes de Init (testes, falhas de bootstrap).
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init configura o logger global a partir da configuração da aplicação.
// JSON em produção, saída de console em desenvolvimento.
func Init(cfg *config.Config) {
	level := zerolog.InfoLevel
	if cfg.App.Environment == "development" {
		level = zerolog.DebugLevel
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	var out = zerolog.New(os.Stdout)
	if cfg.App.Environment == "development" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	log = out.Level(level).With().Timestamp().Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
