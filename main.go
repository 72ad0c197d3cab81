// main.go
//
// Composition root: loads configuration, configures logging, builds the single game
// engine and hands it to the selected presentation adapter (HTTP or console).

package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessnumber/internal/config"
	"github.com/robalobadob/guessnumber/internal/console"
	"github.com/robalobadob/guessnumber/internal/game"
	"github.com/robalobadob/guessnumber/internal/httpserver"
	"github.com/robalobadob/guessnumber/internal/logging"
	"github.com/robalobadob/guessnumber/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithDebug(cfg.DebugHints),
	}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithSource(game.NewSeededSource(cfg.Seed)))
		log.Warn().Uint64("seed", cfg.Seed).Msg("using seeded secrets")
	}
	engine := game.New(opts...)

	switch cfg.Mode {
	case config.ModeConsole:
		if err := console.New(engine, os.Stdin, os.Stdout).Run(); err != nil {
			log.Fatal().Err(err).Msg("console exited")
		}
	default:
		srv := httpserver.New(session.New(engine), httpserver.Options{
			ClientOrigin:   cfg.ClientOrigin,
			RequestTimeout: cfg.RequestTimeout,
			DebugHints:     cfg.DebugHints,
			JWTSecret:      []byte(cfg.JWTSecret),
		})
		if cfg.DebugHints {
			tok, err := httpserver.SignDebugToken([]byte(cfg.JWTSecret), cfg.DebugTokenTTL, time.Now())
			if err != nil {
				log.Fatal().Err(err).Msg("sign debug token")
			}
			log.Warn().Str("token", tok).Msg("debug hints enabled: GET /debug/hint with this bearer token")
		}
		log.Info().Str("port", cfg.Port).Msg("starting guess-number server")
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}
}
