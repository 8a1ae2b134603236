package constants

import "time"

const (
	ExternalAPITimeout = 5 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultTrackedGame      = "Valorant"
	DefaultMatchHistorySize = 5
	DefaultRegion           = "eu"
	DefaultRank             = "Unranked"
	CompetitiveMode         = "competitive"
)

// daily points and play-time estimate
const (
	PointsPerWin  = 20
	PointsPerKill = 2
	HoursPerRound = 0.02
)

const (
	RecentStatsDefaultLimit = 7
	RecentStatsMaxLimit     = 30
	LeaderboardDefaultLimit = 50
	LeaderboardMaxLimit     = 100
	LeaderboardWarmLimit    = 1000
	SkillProfileWindow      = 30
)
