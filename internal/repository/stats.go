package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"valorant-sync/internal/db"
	"valorant-sync/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrGameNotFound = errors.New("game not found in catalog")

type StatsRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewStatsRepository(queries *db.Queries, logger zerolog.Logger) *StatsRepository {
	return &StatsRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *StatsRepository) GameIDByName(ctx context.Context, name string) (string, error) {
	game, err := r.queries.GetGameByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrGameNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up game %s: %w", name, err)
	}
	return game.ID, nil
}

// UpsertDaily writes stat as the single row for its (user, game, date) key.
// An existing row keeps its id and created_at; every counter is replaced.
func (r *StatsRepository) UpsertDaily(ctx context.Context, stat *domain.DailyStat) error {
	now := time.Now().UTC()

	id := stat.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	err := r.queries.UpsertUserStat(ctx, db.UpsertUserStatParams{
		ID:           id,
		UserID:       stat.UserID,
		GameID:       stat.GameID,
		Date:         stat.Date,
		Kills:        int64(stat.Kills),
		Deaths:       int64(stat.Deaths),
		Wins:         int64(stat.Wins),
		Losses:       int64(stat.Losses),
		PointsEarned: int64(stat.PointsEarned),
		HoursPlayed:  stat.HoursPlayed,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", stat.UserID).
			Str("game_id", stat.GameID).
			Str("date", stat.Date).
			Msg("failed to upsert daily stat")
		return fmt.Errorf("failed to upsert daily stat: %w", err)
	}

	r.logger.Debug().
		Str("user_id", stat.UserID).
		Str("game_id", stat.GameID).
		Str("date", stat.Date).
		Msg("daily stat upserted")
	return nil
}

func (r *StatsRepository) GetDaily(ctx context.Context, userID, gameID, date string) (*domain.DailyStat, error) {
	row, err := r.queries.GetUserStat(ctx, db.GetUserStatParams{
		UserID: userID,
		GameID: gameID,
		Date:   date,
	})
	if err != nil {
		return nil, err
	}
	stat := toDomainStat(row)
	return &stat, nil
}

func (r *StatsRepository) CountDaily(ctx context.Context, userID, gameID, date string) (int, error) {
	count, err := r.queries.CountUserStats(ctx, db.CountUserStatsParams{
		UserID: userID,
		GameID: gameID,
		Date:   date,
	})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ListRecent returns a user's newest rows across all games, newest date first.
func (r *StatsRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.DailyStat, error) {
	rows, err := r.queries.ListUserStatsByUser(ctx, db.ListUserStatsByUserParams{
		UserID: userID,
		Limit:  int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stats for %s: %w", userID, err)
	}

	result := make([]domain.DailyStat, len(rows))
	for i, row := range rows {
		result[i] = toDomainStat(row)
	}
	return result, nil
}

// Totals sums a user's points and hours over every stored row. Rank is left
// zero; a user with no rows gets zero totals.
func (r *StatsRepository) Totals(ctx context.Context, userID string) (domain.LeaderboardEntry, error) {
	row, err := r.queries.GetUserTotals(ctx, userID)
	if err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("failed to total stats for %s: %w", userID, err)
	}
	return domain.LeaderboardEntry{
		UserID:      userID,
		TotalPoints: row.TotalPoints,
		HoursPlayed: row.TotalHours,
	}, nil
}

// Leaderboard ranks users by points summed over every stored day and game.
func (r *StatsRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.queries.GetPointsLeaderboard(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	result := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		result[i] = domain.LeaderboardEntry{
			Rank:        int64(i + 1),
			UserID:      row.UserID,
			TotalPoints: row.TotalPoints,
			HoursPlayed: row.TotalHours,
		}
	}
	return result, nil
}

func toDomainStat(row db.UserStat) domain.DailyStat {
	return domain.DailyStat{
		ID:           row.ID,
		UserID:       row.UserID,
		GameID:       row.GameID,
		Date:         row.Date,
		Kills:        int(row.Kills),
		Deaths:       int(row.Deaths),
		Wins:         int(row.Wins),
		Losses:       int(row.Losses),
		PointsEarned: int(row.PointsEarned),
		HoursPlayed:  row.HoursPlayed,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
