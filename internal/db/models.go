// Row types for the tables in internal/database/migrations.

package db

import (
	"time"
)

type Game struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type RiotAccount struct {
	UserID       string
	Puuid        string
	Name         string
	Tag          string
	Region       string
	AccountLevel int64
	Card         string
	RankName     string
	Elo          int64
	LastSyncedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserStat struct {
	ID           string
	UserID       string
	GameID       string
	Date         string
	Kills        int64
	Deaths       int64
	Wins         int64
	Losses       int64
	PointsEarned int64
	HoursPlayed  float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
