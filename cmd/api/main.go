package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Osas21T/fitness-backend/internal/http/handlers"
	"github.com/Osas21T/fitness-backend/internal/http/httpapi"
	"github.com/Osas21T/fitness-backend/internal/imagegen"
	"github.com/Osas21T/fitness-backend/internal/infra"
	"github.com/Osas21T/fitness-backend/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	uploads, err := storage.NewUploadStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare upload directory")
	}

	transformer, err := newTransformer(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure image provider")
	}

	app := handlers.NewApp(cfg, logger, uploads, transformer)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("provider", cfg.Provider).
			Str("upload_dir", uploads.Dir()).
			Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func newTransformer(cfg *infra.Config) (imagegen.Transformer, error) {
	mimeSource, err := imagegen.ParseMIMESource(cfg.MIMESource)
	if err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case infra.ProviderOpenAI:
		return imagegen.NewOpenAIClient(imagegen.OpenAIOptions{
			BaseURL:      cfg.OpenAIBaseURL,
			APIKey:       cfg.OpenAIAPIKey,
			Timeout:      cfg.OpenAITimeout,
			MaxBodyBytes: cfg.MaxOutboundBytes,
			MIMESource:   mimeSource,
		}), nil
	case infra.ProviderFal:
		return imagegen.NewFalClient(imagegen.FalOptions{
			BaseURL:      cfg.FalBaseURL,
			Endpoint:     cfg.FalEndpoint,
			APIKey:       cfg.FalAPIKey,
			MaxBodyBytes: cfg.MaxOutboundBytes,
			MIMESource:   mimeSource,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}
