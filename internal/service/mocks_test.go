package service

import (
	"context"
	"valorant-sync/internal/api"
	"valorant-sync/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockStatsAPI struct {
	mock.Mock
}

func (m *MockStatsAPI) GetAccount(ctx context.Context, name, tag string) (*api.AccountData, error) {
	args := m.Called(ctx, name, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AccountData), args.Error(1)
}

func (m *MockStatsAPI) GetMMR(ctx context.Context, region, name, tag string) (*api.MMRData, error) {
	args := m.Called(ctx, region, name, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.MMRData), args.Error(1)
}

func (m *MockStatsAPI) GetMatches(ctx context.Context, region, name, tag string, size int) ([]api.Match, error) {
	args := m.Called(ctx, region, name, tag, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Match), args.Error(1)
}

type MockStatStore struct {
	mock.Mock
}

func (m *MockStatStore) GameIDByName(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockStatStore) UpsertDaily(ctx context.Context, stat *domain.DailyStat) error {
	args := m.Called(ctx, stat)
	return args.Error(0)
}

func (m *MockStatStore) Totals(ctx context.Context, userID string) (domain.LeaderboardEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.LeaderboardEntry), args.Error(1)
}

type MockPointsCache struct {
	mock.Mock
}

func (m *MockPointsCache) SetTotals(ctx context.Context, entry domain.LeaderboardEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockStatsReader struct {
	mock.Mock
}

func (m *MockStatsReader) ListRecent(ctx context.Context, userID string, limit int) ([]domain.DailyStat, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyStat), args.Error(1)
}

func (m *MockStatsReader) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, bool, error) {
	args := m.Called(ctx, limit)
	var entries []domain.LeaderboardEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LeaderboardEntry)
	}
	return entries, args.Bool(1), args.Error(2)
}

// match builds an upstream match where each player is on the given team.
func match(teams map[string]*api.MatchTeam, players ...api.MatchPlayer) api.Match {
	var m api.Match
	m.Players.AllPlayers = players
	m.Teams = teams
	return m
}

func player(puuid, team string, kills, deaths int) api.MatchPlayer {
	var p api.MatchPlayer
	p.Puuid = puuid
	p.Team = team
	p.Stats.Kills = kills
	p.Stats.Deaths = deaths
	return p
}

type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) Upsert(ctx context.Context, account *domain.LinkedAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) GetByUser(ctx context.Context, userID string) (*domain.LinkedAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkedAccount), args.Error(1)
}
