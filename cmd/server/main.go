package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"valorant-sync/internal/config"
	"valorant-sync/internal/constants"
	fxmodules "valorant-sync/internal/fx"
	"valorant-sync/internal/middleware"
	"valorant-sync/internal/server"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
)

func main() {
	envFile := flag.String("env-file", ".env", "path to the env file")
	port := flag.String("port", "", "listen port, overrides SERVER_PORT")
	flag.Parse()

	fx.New(
		fx.Supply(config.Flags{EnvFile: *envFile, Port: *port}),
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	apiServer *server.Server,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	logger.Info().
		Bool("env_file_loaded", cfg.EnvFileLoaded).
		Str("db_path", cfg.DBPath).
		Str("hdev_base_url", cfg.HDevBaseURL).
		Bool("hdev_api_key_set", cfg.HDevAPIKey != "").
		Bool("redis_enabled", cfg.RedisAddr != "").
		Str("tracked_game", cfg.TrackedGame).
		Int("match_history_size", cfg.MatchHistorySize).
		Dur("external_api_timeout", cfg.ExternalAPITimeout).
		Str("stats_timezone", cfg.StatsLocation.String()).
		Msg("configuration loaded")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	handler := middleware.RequestID(logger)(c.Handler(apiServer.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      handler,
		ReadTimeout:  constants.RequestTimeout,
		WriteTimeout: constants.RequestTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
