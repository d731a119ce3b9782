package main

import (
	"context"
	"errors"
	"io"
	"net/http"

	"bodytrack/internal/adapter/file"
	adapthttp "bodytrack/internal/adapter/http"
	"bodytrack/internal/adapter/memory"
	"bodytrack/internal/adapter/postgres"
	"bodytrack/internal/adapter/redis"
	"bodytrack/internal/app"
	"bodytrack/internal/config"
	"bodytrack/internal/domain"
	"bodytrack/internal/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("info", "")
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Init(cfg.LogLevel, cfg.LogFile)

	gateway, err := openGateway(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("open persistence gateway")
	}
	if closer, ok := gateway.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	profiles := app.NewProfileStore()
	entries := app.NewEntryStore(domain.ChallengeWeeks)
	session := app.NewSession(profiles, entries, gateway)
	session.Restore(context.Background())

	h := adapthttp.New(session, cfg.WebDir).Handler()
	log.Info().Str("addr", cfg.Addr).Str("store", cfg.Store).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func openGateway(cfg *config.Config) (domain.Gateway, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreFile:
		return file.New(cfg.DataDir)
	case config.StorePostgres:
		return postgres.Open(cfg.DatabaseURL)
	case config.StoreRedis:
		return redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return nil, errors.New("unknown store " + cfg.Store)
}
