package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"valorant-sync/internal/config"
	"valorant-sync/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	leaderboardPointsKey = "leaderboard:points"
	leaderboardHoursKey  = "leaderboard:hours"
)

// Leaderboard mirrors every user's total points into a Redis sorted set and
// their total hours into a companion hash.
// A zero value, or one built without REDIS_ADDR, is disabled: writes are
// no-ops and reads report a miss.
type Leaderboard struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewLeaderboard(cfg *config.Config, logger zerolog.Logger) *Leaderboard {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("REDIS_ADDR not set, leaderboard cache disabled")
		return &Leaderboard{logger: logger}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	logger.Info().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("leaderboard cache configured")
	return &Leaderboard{client: rdb, logger: logger}
}

func (l *Leaderboard) Enabled() bool {
	return l != nil && l.client != nil
}

func (l *Leaderboard) Ping(ctx context.Context) error {
	if !l.Enabled() {
		return nil
	}
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// SetTotals stores entry's absolute points and hours for its user.
func (l *Leaderboard) SetTotals(ctx context.Context, entry domain.LeaderboardEntry) error {
	if !l.Enabled() {
		return nil
	}

	pipe := l.client.TxPipeline()
	pipe.ZAdd(ctx, leaderboardPointsKey, pointsMember(entry))
	pipe.HSet(ctx, leaderboardHoursKey, entry.UserID, entry.HoursPlayed)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set leaderboard totals: %w", err)
	}
	return nil
}

// Warm replaces the cached board with entries in a single transaction.
func (l *Leaderboard) Warm(ctx context.Context, entries []domain.LeaderboardEntry) error {
	if !l.Enabled() {
		return nil
	}

	pipe := l.client.TxPipeline()
	pipe.Del(ctx, leaderboardPointsKey, leaderboardHoursKey)
	if len(entries) > 0 {
		members := make([]redis.Z, len(entries))
		hours := make(map[string]any, len(entries))
		for i, e := range entries {
			members[i] = pointsMember(e)
			hours[e.UserID] = e.HoursPlayed
		}
		pipe.ZAdd(ctx, leaderboardPointsKey, members...)
		pipe.HSet(ctx, leaderboardHoursKey, hours)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to warm leaderboard: %w", err)
	}
	return nil
}

// Top returns the best limit users, ordered like the SQL leaderboard. ok is
// false when the cache is disabled or empty and the caller should go to the
// database instead.
func (l *Leaderboard) Top(ctx context.Context, limit int) (entries []domain.LeaderboardEntry, ok bool, err error) {
	if !l.Enabled() || limit <= 0 {
		return nil, false, nil
	}

	players, err := l.client.ZRangeWithScores(ctx, leaderboardPointsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get top players: %w", err)
	}
	if len(players) == 0 {
		return nil, false, nil
	}

	members := make([]string, len(players))
	for i, p := range players {
		members[i], _ = p.Member.(string)
	}

	hours, err := l.client.HMGet(ctx, leaderboardHoursKey, members...).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get leaderboard hours: %w", err)
	}

	entries = make([]domain.LeaderboardEntry, 0, len(players))
	for i, p := range players {
		entry := domain.LeaderboardEntry{
			Rank:        int64(i + 1),
			UserID:      members[i],
			TotalPoints: -int64(p.Score),
		}
		if raw, isString := hours[i].(string); isString {
			entry.HoursPlayed, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, false, fmt.Errorf("bad leaderboard hours for %s: %w", members[i], err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, true, nil
}

// pointsMember scores a user by negated points so that ZRANGE yields the
// highest totals first and breaks ties on user id ascending.
func pointsMember(entry domain.LeaderboardEntry) redis.Z {
	return redis.Z{Score: -float64(entry.TotalPoints), Member: entry.UserID}
}

func (l *Leaderboard) Close() error {
	if !l.Enabled() {
		return nil
	}
	return l.client.Close()
}
