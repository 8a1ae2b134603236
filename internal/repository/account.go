package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"valorant-sync/internal/db"
	"valorant-sync/internal/domain"

	"github.com/rs/zerolog"
)

var ErrAccountNotLinked = errors.New("no riot account linked")

type AccountRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewAccountRepository(queries *db.Queries, logger zerolog.Logger) *AccountRepository {
	return &AccountRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *AccountRepository) GetByUser(ctx context.Context, userID string) (*domain.LinkedAccount, error) {
	row, err := r.queries.GetRiotAccountByUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotLinked
	}
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get linked account")
		return nil, fmt.Errorf("failed to get linked account: %w", err)
	}

	return &domain.LinkedAccount{
		UserID:       row.UserID,
		Puuid:        row.Puuid,
		Name:         row.Name,
		Tag:          row.Tag,
		Region:       row.Region,
		AccountLevel: int(row.AccountLevel),
		Card:         row.Card,
		Rank:         row.RankName,
		Elo:          int(row.Elo),
		LastSyncedAt: row.LastSyncedAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// Upsert links account to its user, replacing any account linked before.
func (r *AccountRepository) Upsert(ctx context.Context, account *domain.LinkedAccount) error {
	now := time.Now().UTC()
	synced := account.LastSyncedAt
	if synced.IsZero() {
		synced = now
	}

	err := r.queries.UpsertRiotAccount(ctx, db.UpsertRiotAccountParams{
		UserID:       account.UserID,
		Puuid:        account.Puuid,
		Name:         account.Name,
		Tag:          account.Tag,
		Region:       account.Region,
		AccountLevel: int64(account.AccountLevel),
		Card:         account.Card,
		RankName:     account.Rank,
		Elo:          int64(account.Elo),
		LastSyncedAt: synced,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", account.UserID).Str("puuid", account.Puuid).Msg("failed to upsert linked account")
		return fmt.Errorf("failed to upsert linked account: %w", err)
	}
	return nil
}
