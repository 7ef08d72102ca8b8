package main

import (
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smsgate/console/internal/api"
	"github.com/smsgate/console/internal/auth"
	"github.com/smsgate/console/internal/config"
	"github.com/smsgate/console/internal/message/twilio"
	"github.com/smsgate/console/internal/secret"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration.
	// The configuration contains secrets and is never logged as a whole.
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

	// Validate the security-critical configuration values.
	// Refusing to start beats discovering a broken hash or key on the first login attempt.
	if err := auth.ValidatePasswordHash(cfg.OperatorPasswordHash); err != nil {
		log.Fatal().Err(err).Msg("invalid operator password hash")
	}
	signingKey, err := secret.DecodeSigningKey(cfg.SessionSigningSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid session signing secret")
	}
	tokens := auth.NewTokenService(signingKey, cfg.SessionLifetime)

	// Create the messaging provider client
	gateway := twilio.New(cfg.TwilioBaseURL, cfg.TwilioAccountSID, cfg.TwilioAPIKey, cfg.TwilioAPISecret)

	// Start up the web console
	log.Info().Str("web", cfg.WebListenAddress).Msg("starting up the web console...")
	apiService := &api.Service{
		Config:  cfg,
		Gateway: gateway,
		Tokens:  tokens,
	}
	apiErrs := make(chan error, 1)
	apiService.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the web console raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the web console...")
		apiService.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
