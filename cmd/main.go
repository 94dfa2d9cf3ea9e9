package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepgram/chatrelay/internal/api/handlers"
	"github.com/deepgram/chatrelay/internal/config"
	"github.com/deepgram/chatrelay/internal/logger"
	"github.com/deepgram/chatrelay/internal/services"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()

	logger.Init(config.GetLogLevel(), config.GetLogFormat())

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn().Err(envErr).Msg("Failed to load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Missing Cloudflare credentials")
	}

	svcs, err := services.InitializeServices(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = serve(ctx, cfg.Server, setupRouter(svcs), svcs)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
}

// serve runs the server and closes resources once it has stopped, whether
// it stopped cleanly or not.
func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, resources io.Closer) error {
	runErr := run(ctx, cfg, handler)

	if err := resources.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close services")
	}

	return runErr
}

func setupRouter(svcs *services.Services) *mux.Router {
	return handlers.NewRouter(svcs)
}

// run serves handler until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg config.ServerConfig, handler http.Handler) error {
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
