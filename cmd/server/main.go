package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/scribehq/blog-server/internal/api"
	"github.com/scribehq/blog-server/internal/auth"
	"github.com/scribehq/blog-server/internal/config"
	"github.com/scribehq/blog-server/internal/storage"
	"github.com/scribehq/blog-server/internal/storage/memory"
	"github.com/scribehq/blog-server/internal/storage/postgres"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the storage driver
	log.Info().Str("driver", cfg.StorageDriver).Msg("initializing storage driver...")
	var driver storage.Driver
	switch cfg.StorageDriver {
	case "memory":
		driver = memory.New()
	default:
		driver = postgres.New(cfg.PostgresDSN)
	}
	if err := driver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the storage driver")
	}
	defer driver.Close()

	// Create the JWT token service
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenLifetime)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the token service")
	}

	// Start up the API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the API...")
	service := &api.Service{
		Config:  cfg,
		Storage: driver,
		Tokens:  tokens,
	}
	apiErrs := make(chan error, 1)
	go func() {
		if err := service.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			apiErrs <- err
		}
	}()
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the API...")
		service.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
