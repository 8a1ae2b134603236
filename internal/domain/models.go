package domain

import (
	"time"
)

type Game struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Handle is a Riot ID split into its display name and tag.
type Handle struct {
	Name string
	Tag  string
}

func (h Handle) String() string {
	return h.Name + "#" + h.Tag
}

type Account struct {
	Puuid        string
	Name         string
	Tag          string
	Region       string
	AccountLevel int
	Card         string // small card image url, may be empty
}

type Rank struct {
	TierName string
	Elo      int
}

// MatchAggregate holds counters folded over a player's recent matches.
type MatchAggregate struct {
	Matches      int // raw upstream list length
	Kills        int
	Deaths       int
	Wins         int
	Losses       int
	RoundsPlayed int
}

// DailyStat is one user's rollup for one game on one calendar day.
type DailyStat struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	GameID       string    `json:"game_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Kills        int       `json:"kills"`
	Deaths       int       `json:"deaths"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	PointsEarned int       `json:"points_earned"`
	HoursPlayed  float64   `json:"hours_played"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StatSummary struct {
	Account     SummaryAccount `json:"account"`
	Rank        string         `json:"rank"`
	Elo         int            `json:"elo"`
	RecentStats RecentStats    `json:"recentStats"`
}

type SummaryAccount struct {
	Name  string `json:"name"`
	Tag   string `json:"tag"`
	Level int    `json:"level"`
	Card  string `json:"card,omitempty"`
}

type RecentStats struct {
	Matches int    `json:"matches"`
	Kills   int    `json:"kills"`
	Deaths  int    `json:"deaths"`
	KD      string `json:"kd"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
}

type LeaderboardEntry struct {
	Rank        int64   `json:"rank"`
	UserID      string  `json:"user_id"`
	TotalPoints int64   `json:"total_points"`
	HoursPlayed float64 `json:"hours_played,omitempty"`
}

type Skill struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type SkillProfile struct {
	GamerType  string  `json:"gamer_type"`
	Skills     []Skill `json:"skills"`
	TotalHours float64 `json:"total_hours"`
	TotalKills int     `json:"total_kills"`
	TotalWins  int     `json:"total_wins"`
	Days       int     `json:"days"`
}

// LinkedAccount is the Riot account a user last synced, with its rank at
// that time.
type LinkedAccount struct {
	UserID       string    `json:"user_id"`
	Puuid        string    `json:"puuid"`
	Name         string    `json:"name"`
	Tag          string    `json:"tag"`
	Region       string    `json:"region"`
	AccountLevel int       `json:"account_level"`
	Card         string    `json:"card,omitempty"`
	Rank         string    `json:"rank"`
	Elo          int       `json:"elo"`
	LastSyncedAt time.Time `json:"last_synced_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
