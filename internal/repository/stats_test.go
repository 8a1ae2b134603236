package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"valorant-sync/internal/database"
	"valorant-sync/internal/db"
	"valorant-sync/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *StatsRepository {
	t.Helper()

	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "stats.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewStatsRepository(db.New(sqlDB), zerolog.Nop())
}

func TestGameIDByName(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		game    string
		wantID  string
		wantErr error
	}{
		{name: "seeded catalog entry", game: "Valorant", wantID: "valorant"},
		{name: "unknown game", game: "Overwatch", wantErr: ErrGameNotFound},
		{name: "lookup is case sensitive", game: "valorant", wantErr: ErrGameNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := repo.GameIDByName(ctx, tt.game)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestUpsertDailyReplacesRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &domain.DailyStat{
		UserID: "user-1", GameID: "valorant", Date: "2024-06-01",
		Kills: 10, Deaths: 5, Wins: 1, Losses: 0, PointsEarned: 40, HoursPlayed: 0.26,
	}
	require.NoError(t, repo.UpsertDaily(ctx, first))

	stored, err := repo.GetDaily(ctx, "user-1", "valorant", "2024-06-01")
	require.NoError(t, err)
	firstID := stored.ID
	createdAt := stored.CreatedAt

	second := &domain.DailyStat{
		UserID: "user-1", GameID: "valorant", Date: "2024-06-01",
		Kills: 20, Deaths: 10, Wins: 1, Losses: 1, PointsEarned: 60, HoursPlayed: 0.42,
	}
	require.NoError(t, repo.UpsertDaily(ctx, second))

	count, err := repo.CountDaily(ctx, "user-1", "valorant", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err = repo.GetDaily(ctx, "user-1", "valorant", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, firstID, stored.ID)
	assert.True(t, stored.CreatedAt.Equal(createdAt))
	assert.Equal(t, 20, stored.Kills)
	assert.Equal(t, 10, stored.Deaths)
	assert.Equal(t, 1, stored.Wins)
	assert.Equal(t, 1, stored.Losses)
	assert.Equal(t, 60, stored.PointsEarned)
	assert.InDelta(t, 0.42, stored.HoursPlayed, 1e-9)
}

func TestUpsertDailyUnknownGame(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpsertDaily(context.Background(), &domain.DailyStat{
		UserID: "user-1", GameID: "missing", Date: "2024-06-01",
	})
	require.Error(t, err)
}

func TestGetDailyMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetDaily(context.Background(), "nobody", "valorant", "2024-06-01")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListRecent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		require.NoError(t, repo.UpsertDaily(ctx, &domain.DailyStat{
			UserID: "user-1", GameID: "valorant", Date: fmt.Sprintf("2024-06-%02d", day),
			Kills: day,
		}))
	}
	require.NoError(t, repo.UpsertDaily(ctx, &domain.DailyStat{
		UserID: "user-2", GameID: "valorant", Date: "2024-06-09", Kills: 99,
	}))

	stats, err := repo.ListRecent(ctx, "user-1", 3)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "2024-06-05", stats[0].Date)
	assert.Equal(t, "2024-06-04", stats[1].Date)
	assert.Equal(t, "2024-06-03", stats[2].Date)
	for _, s := range stats {
		assert.Equal(t, "user-1", s.UserID)
	}

	empty, err := repo.ListRecent(ctx, "nobody", 7)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLeaderboardAndTotals(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rows := []domain.DailyStat{
		{UserID: "alice", Date: "2024-06-01", PointsEarned: 100, HoursPlayed: 0.5},
		{UserID: "alice", Date: "2024-06-02", PointsEarned: 50, HoursPlayed: 0.25},
		{UserID: "bob", Date: "2024-06-01", PointsEarned: 200, HoursPlayed: 1},
		{UserID: "carol", Date: "2024-06-01", PointsEarned: 150},
	}
	for i := range rows {
		rows[i].GameID = "valorant"
		require.NoError(t, repo.UpsertDaily(ctx, &rows[i]))
	}

	totals, err := repo.Totals(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", totals.UserID)
	assert.Equal(t, int64(150), totals.TotalPoints)
	assert.InDelta(t, 0.75, totals.HoursPlayed, 1e-9)
	assert.Zero(t, totals.Rank)

	totals, err = repo.Totals(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, domain.LeaderboardEntry{UserID: "nobody"}, totals)

	board, err := repo.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 3)

	assert.Equal(t, domain.LeaderboardEntry{Rank: 1, UserID: "bob", TotalPoints: 200, HoursPlayed: 1}, board[0])
	// alice and carol tie on points, ties break on user id
	assert.Equal(t, "alice", board[1].UserID)
	assert.Equal(t, int64(2), board[1].Rank)
	assert.InDelta(t, 0.75, board[1].HoursPlayed, 1e-9)
	assert.Equal(t, "carol", board[2].UserID)
	assert.Equal(t, int64(3), board[2].Rank)

	top, err := repo.Leaderboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "bob", top[0].UserID)
}

func TestUpsertDailyConcurrent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(kills int) {
			defer wg.Done()
			errs <- repo.UpsertDaily(ctx, &domain.DailyStat{
				UserID: "user-1", GameID: "valorant", Date: "2024-06-01", Kills: kills,
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	count, err := repo.CountDaily(ctx, "user-1", "valorant", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
