package service

import (
	"context"
	"valorant-sync/internal/constants"
	"valorant-sync/internal/domain"

	"github.com/rs/zerolog"
)

type AccountReader interface {
	GetByUser(ctx context.Context, userID string) (*domain.LinkedAccount, error)
}

type AccountService struct {
	repo   AccountReader
	logger zerolog.Logger
}

func NewAccountService(repo AccountReader, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

// Linked returns the Riot account userID last synced. It fails with
// repository.ErrAccountNotLinked when the user has never synced.
func (s *AccountService) Linked(ctx context.Context, userID string) (*domain.LinkedAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.logger.Debug().Str("user_id", userID).Msg("getting linked account")
	return s.repo.GetByUser(ctx, userID)
}
