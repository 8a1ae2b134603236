package fx

import (
	"context"
	"database/sql"
	"valorant-sync/internal/api"
	"valorant-sync/internal/auth"
	"valorant-sync/internal/cache"
	"valorant-sync/internal/config"
	"valorant-sync/internal/constants"
	"valorant-sync/internal/database"
	"valorant-sync/internal/db"
	"valorant-sync/internal/logger"
	"valorant-sync/internal/repository"
	"valorant-sync/internal/server"
	"valorant-sync/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideSyncService(hdev *api.HDevClient, repo *repository.StatsRepository, accounts *repository.AccountRepository, board *cache.Leaderboard, cfg *config.Config, logger zerolog.Logger) *service.SyncService {
	return service.NewSyncService(hdev, repo, accounts, board, service.SyncOptionsFromConfig(cfg), logger)
}

func ProvideAccountService(repo *repository.AccountRepository, logger zerolog.Logger) *service.AccountService {
	return service.NewAccountService(repo, logger)
}

func ProvideStatsService(repo *repository.StatsRepository, board *cache.Leaderboard, logger zerolog.Logger) *service.StatsService {
	return service.NewStatsService(repo, board, logger)
}

func ProvideServer(syncSvc *service.SyncService, statsSvc *service.StatsService, accountSvc *service.AccountService, hdev *api.HDevClient, verifier *auth.Verifier, logger zerolog.Logger) *server.Server {
	return server.NewServer(syncSvc, statsSvc, accountSvc, hdev, verifier, logger)
}

// RegisterLeaderboardCache checks Redis and seeds it from the database on
// start. An unreachable cache only degrades leaderboard reads to SQL.
func RegisterLeaderboardCache(lc fx.Lifecycle, board *cache.Leaderboard, repo *repository.StatsRepository, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !board.Enabled() {
				return nil
			}
			if err := board.Ping(ctx); err != nil {
				logger.Warn().Err(err).Msg("leaderboard cache unreachable")
				return nil
			}

			entries, err := repo.Leaderboard(ctx, constants.LeaderboardWarmLimit)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to load leaderboard for cache warm-up")
				return nil
			}
			if err := board.Warm(ctx, entries); err != nil {
				logger.Warn().Err(err).Msg("failed to warm leaderboard cache")
				return nil
			}
			logger.Info().Int("entries", len(entries)).Msg("leaderboard cache warmed")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := board.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing leaderboard cache")
			}
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(logger.New),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewStatsRepository),
	fx.Provide(repository.NewAccountRepository),
	// cache
	fx.Provide(cache.NewLeaderboard),
	fx.Invoke(RegisterLeaderboardCache),
	// api client
	fx.Provide(api.NewHDevClient),
	// auth
	fx.Provide(auth.NewVerifier),
	// svc
	fx.Provide(ProvideSyncService),
	fx.Provide(ProvideStatsService),
	fx.Provide(ProvideAccountService),
	// server
	fx.Provide(ProvideServer),
)
