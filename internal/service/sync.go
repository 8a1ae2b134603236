package service

import (
	"context"
	"errors"
	"time"
	"valorant-sync/internal/api"
	"valorant-sync/internal/config"
	"valorant-sync/internal/constants"
	"valorant-sync/internal/domain"
	"valorant-sync/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	msgUnauthorized   = "Unauthorized"
	msgPlayerNotFound = "Player not found. Check your Riot ID."
	msgGameNotFound   = "Valorant game not found in database"
	msgPersistFailed  = "Failed to save stats. Please try again."
	statsDateLayout   = "2006-01-02"
)

type StatsAPI interface {
	GetAccount(ctx context.Context, name, tag string) (*api.AccountData, error)
	GetMMR(ctx context.Context, region, name, tag string) (*api.MMRData, error)
	GetMatches(ctx context.Context, region, name, tag string, size int) ([]api.Match, error)
}

type StatStore interface {
	GameIDByName(ctx context.Context, name string) (string, error)
	UpsertDaily(ctx context.Context, stat *domain.DailyStat) error
	Totals(ctx context.Context, userID string) (domain.LeaderboardEntry, error)
}

type AccountStore interface {
	Upsert(ctx context.Context, account *domain.LinkedAccount) error
}

type PointsCache interface {
	SetTotals(ctx context.Context, entry domain.LeaderboardEntry) error
}

type SyncOptions struct {
	TrackedGame      string
	MatchHistorySize int
	CallTimeout      time.Duration
	Location         *time.Location
	Now              func() time.Time
}

func SyncOptionsFromConfig(cfg *config.Config) SyncOptions {
	return SyncOptions{
		TrackedGame:      cfg.TrackedGame,
		MatchHistorySize: cfg.MatchHistorySize,
		CallTimeout:      cfg.ExternalAPITimeout,
		Location:         cfg.StatsLocation,
	}
}

type SyncService struct {
	hdev     StatsAPI
	store    StatStore
	accounts AccountStore
	points   PointsCache
	opts     SyncOptions
	logger   zerolog.Logger
}

func NewSyncService(hdev StatsAPI, store StatStore, accounts AccountStore, points PointsCache, opts SyncOptions, logger zerolog.Logger) *SyncService {
	if opts.TrackedGame == "" {
		opts.TrackedGame = constants.DefaultTrackedGame
	}
	if opts.MatchHistorySize <= 0 {
		opts.MatchHistorySize = constants.DefaultMatchHistorySize
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = constants.ExternalAPITimeout
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SyncService{hdev: hdev, store: store, accounts: accounts, points: points, opts: opts, logger: logger}
}

// Sync pulls the player's account, rank and recent competitive matches,
// stores today's rollup for userID and returns a summary. Every error is a
// *domain.SyncError.
func (s *SyncService) Sync(ctx context.Context, userID, rawHandle string) (*domain.StatSummary, error) {
	if userID == "" {
		return nil, domain.NewSyncError(domain.KindUnauthorized, msgUnauthorized, nil)
	}

	handle, err := ParseHandle(rawHandle)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With().Str("user_id", userID).Str("handle", handle.String()).Logger()
	logger.Info().Msg("syncing stats")

	account, err := s.lookupAccount(ctx, handle)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to fetch account")
		return nil, domain.NewSyncError(domain.KindPlayerNotFound, msgPlayerNotFound, err)
	}
	logger = logger.With().Str("puuid", account.Puuid).Str("region", account.Region).Logger()

	var (
		rank    domain.Rank
		matches []api.Match
	)

	// rank and matches failures degrade to defaults, never abort
	g := new(errgroup.Group)
	g.Go(func() error {
		rank = s.lookupRank(ctx, account, logger)
		return nil
	})
	g.Go(func() error {
		matches = s.lookupMatches(ctx, account, logger)
		return nil
	})
	_ = g.Wait()

	agg := Aggregate(matches, account.Puuid)

	summary := &domain.StatSummary{
		Account: domain.SummaryAccount{
			Name:  account.Name,
			Tag:   account.Tag,
			Level: account.AccountLevel,
			Card:  account.Card,
		},
		Rank: rank.TierName,
		Elo:  rank.Elo,
		RecentStats: domain.RecentStats{
			Matches: agg.Matches,
			Kills:   agg.Kills,
			Deaths:  agg.Deaths,
			KD:      FormatKD(agg.Kills, agg.Deaths),
			Wins:    agg.Wins,
			Losses:  agg.Losses,
		},
	}

	if err := s.persist(ctx, userID, agg, logger); err != nil {
		return nil, err
	}
	s.linkAccount(ctx, userID, account, rank, logger)

	logger.Info().
		Int("matches", agg.Matches).
		Int("kills", agg.Kills).
		Int("deaths", agg.Deaths).
		Int("wins", agg.Wins).
		Str("rank", rank.TierName).
		Msg("stats synced")
	return summary, nil
}

func (s *SyncService) lookupAccount(ctx context.Context, handle domain.Handle) (*domain.Account, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	defer cancel()

	data, err := s.hdev.GetAccount(callCtx, handle.Name, handle.Tag)
	if err != nil {
		return nil, err
	}

	region := data.Region
	if region == "" {
		region = constants.DefaultRegion
	}

	return &domain.Account{
		Puuid:        data.Puuid,
		Name:         data.Name,
		Tag:          data.Tag,
		Region:       region,
		AccountLevel: data.AccountLevel,
		Card:         data.Card.Small,
	}, nil
}

func (s *SyncService) lookupRank(ctx context.Context, account *domain.Account, logger zerolog.Logger) domain.Rank {
	rank := domain.Rank{TierName: constants.DefaultRank}

	callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	defer cancel()

	mmr, err := s.hdev.GetMMR(callCtx, account.Region, account.Name, account.Tag)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to fetch mmr, reporting unranked")
		return rank
	}

	if mmr.CurrentData.CurrentTierPatched != "" {
		rank.TierName = mmr.CurrentData.CurrentTierPatched
	}
	rank.Elo = mmr.CurrentData.Elo
	return rank
}

func (s *SyncService) lookupMatches(ctx context.Context, account *domain.Account, logger zerolog.Logger) []api.Match {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	defer cancel()

	matches, err := s.hdev.GetMatches(callCtx, account.Region, account.Name, account.Tag, s.opts.MatchHistorySize)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to fetch matches, reporting none")
		return nil
	}
	return matches
}

func (s *SyncService) persist(ctx context.Context, userID string, agg domain.MatchAggregate, logger zerolog.Logger) error {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	gameID, err := s.store.GameIDByName(dbCtx, s.opts.TrackedGame)
	if errors.Is(err, repository.ErrGameNotFound) {
		logger.Error().Err(err).Str("game", s.opts.TrackedGame).Msg("tracked game missing from catalog")
		return domain.NewSyncError(domain.KindCatalogMisconfigured, msgGameNotFound, err)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve tracked game")
		return domain.NewSyncError(domain.KindUpstreamOrInternal, err.Error(), err)
	}

	stat := &domain.DailyStat{
		UserID:       userID,
		GameID:       gameID,
		Date:         s.today(),
		Kills:        agg.Kills,
		Deaths:       agg.Deaths,
		Wins:         agg.Wins,
		Losses:       agg.Losses,
		PointsEarned: Points(agg.Wins, agg.Kills),
		HoursPlayed:  HoursPlayed(agg.RoundsPlayed),
	}

	if err := s.store.UpsertDaily(dbCtx, stat); err != nil {
		return domain.NewSyncError(domain.KindPersistenceFailed, msgPersistFailed, err)
	}

	s.refreshPoints(ctx, userID, logger)
	return nil
}

func (s *SyncService) linkAccount(ctx context.Context, userID string, account *domain.Account, rank domain.Rank, logger zerolog.Logger) {
	if s.accounts == nil {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	err := s.accounts.Upsert(dbCtx, &domain.LinkedAccount{
		UserID:       userID,
		Puuid:        account.Puuid,
		Name:         account.Name,
		Tag:          account.Tag,
		Region:       account.Region,
		AccountLevel: account.AccountLevel,
		Card:         account.Card,
		Rank:         rank.TierName,
		Elo:          rank.Elo,
		LastSyncedAt: s.opts.Now().UTC(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to record linked account")
	}
}

func (s *SyncService) refreshPoints(ctx context.Context, userID string, logger zerolog.Logger) {
	if s.points == nil {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	totals, err := s.store.Totals(dbCtx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to total stats for leaderboard cache")
		return
	}
	if err := s.points.SetTotals(ctx, totals); err != nil {
		logger.Warn().Err(err).Msg("failed to update leaderboard cache")
	}
}

func (s *SyncService) today() string {
	return s.opts.Now().In(s.opts.Location).Format(statsDateLayout)
}
