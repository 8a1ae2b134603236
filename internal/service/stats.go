package service

import (
	"context"
	"math"
	"valorant-sync/internal/constants"
	"valorant-sync/internal/domain"

	"github.com/rs/zerolog"
)

type StatsReader interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.DailyStat, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type LeaderboardCache interface {
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, bool, error)
}

type StatsService struct {
	reader StatsReader
	cache  LeaderboardCache
	logger zerolog.Logger
}

func NewStatsService(reader StatsReader, cache LeaderboardCache, logger zerolog.Logger) *StatsService {
	return &StatsService{reader: reader, cache: cache, logger: logger}
}

// ClampLimit maps a non-positive limit to def and caps it at ceiling.
func ClampLimit(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}

func (s *StatsService) Recent(ctx context.Context, userID string, limit int) ([]domain.DailyStat, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	limit = ClampLimit(limit, constants.RecentStatsDefaultLimit, constants.RecentStatsMaxLimit)

	stats, err := s.reader.ListRecent(ctx, userID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list recent stats")
		return nil, err
	}
	if stats == nil {
		stats = []domain.DailyStat{}
	}
	return stats, nil
}

// Leaderboard serves from the cache when it has data and falls back to the
// database otherwise.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	limit = ClampLimit(limit, constants.LeaderboardDefaultLimit, constants.LeaderboardMaxLimit)

	if s.cache != nil {
		entries, ok, err := s.cache.Top(ctx, limit)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Msg("leaderboard cache read failed, using database")
		case ok:
			s.logger.Debug().Int("entries", len(entries)).Msg("leaderboard served from cache")
			return entries, nil
		}
	}

	entries, err := s.reader.Leaderboard(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load leaderboard")
		return nil, err
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries, nil
}

func (s *StatsService) SkillProfile(ctx context.Context, userID string) (*domain.SkillProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	stats, err := s.reader.ListRecent(ctx, userID, constants.SkillProfileWindow)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load stats for skill profile")
		return nil, err
	}

	return BuildSkillProfile(stats), nil
}

var skillOrder = []struct {
	key   string
	label string
}{
	{"aim", "Aiming Precision"},
	{"decision", "Decision Making"},
	{"consistency", "Consistency"},
	{"teamwork", "Teamwork"},
	{"aggression", "Aggression"},
}

// BuildSkillProfile scores a player from their daily rows. Skills are capped
// at 100.
func BuildSkillProfile(stats []domain.DailyStat) *domain.SkillProfile {
	profile := &domain.SkillProfile{
		Skills: make([]domain.Skill, len(skillOrder)),
		Days:   len(stats),
	}

	var kills, deaths, wins, losses int
	for _, st := range stats {
		kills += st.Kills
		deaths += st.Deaths
		wins += st.Wins
		losses += st.Losses
		profile.TotalHours += st.HoursPlayed
	}
	profile.TotalHours = math.Round(profile.TotalHours*100) / 100
	profile.TotalKills = kills
	profile.TotalWins = wins

	values := make([]int, len(skillOrder))
	if len(stats) > 0 {
		kd := float64(kills)
		if deaths > 0 {
			kd = float64(kills) / float64(deaths)
		}
		matches := wins + losses
		if matches == 0 {
			matches = 1
		}
		winRate := float64(wins) / float64(matches)

		consistency := 15
		if len(stats) <= 3 {
			consistency = len(stats) * 5
		}

		values = []int{
			capSkill(math.Round(kd * 30)),
			capSkill(math.Round(winRate * 100)),
			capSkill(float64(70 + consistency)),
			capSkill(math.Round(winRate*90 + 10)),
			capSkill(math.Round(kd * 25)),
		}
	}

	for i, s := range skillOrder {
		profile.Skills[i] = domain.Skill{Key: s.key, Label: s.label, Value: values[i]}
	}
	profile.GamerType = gamerType(profile.Skills, len(stats) > 0)
	return profile
}

func capSkill(v float64) int {
	return int(math.Min(100, v))
}

// gamerType names the player after their strongest skill. The earliest skill
// wins a tie.
func gamerType(skills []domain.Skill, hasData bool) string {
	if !hasData || len(skills) == 0 {
		return "Well-Rounded Gamer"
	}

	top := skills[0]
	for _, s := range skills[1:] {
		if s.Value > top.Value {
			top = s
		}
	}

	switch top.Key {
	case "aim", "aggression":
		return "Aggressive Fragger"
	case "decision":
		return "Strategic Thinker"
	case "teamwork":
		return "Team Player"
	case "consistency":
		return "Reliable Anchor"
	default:
		return "Well-Rounded Gamer"
	}
}
