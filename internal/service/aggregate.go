package service

import (
	"math"
	"strconv"
	"strings"
	"valorant-sync/internal/api"
	"valorant-sync/internal/constants"
	"valorant-sync/internal/domain"
)

const (
	msgHandleRequired = "ingame_id is required (format: Name#Tag)"
	msgHandleFormat   = "Invalid format. Use Name#Tag"
)

// ParseHandle splits a Riot ID of the form Name#Tag. Both sides are kept as
// typed and must be non-empty.
func ParseHandle(raw string) (domain.Handle, error) {
	if raw == "" {
		return domain.Handle{}, domain.NewSyncError(domain.KindMalformedHandle, msgHandleRequired, nil)
	}

	parts := strings.Split(raw, "#")
	if len(parts) != 2 {
		return domain.Handle{}, domain.NewSyncError(domain.KindMalformedHandle, msgHandleFormat, nil)
	}

	name, tag := parts[0], parts[1]
	if name == "" || tag == "" {
		return domain.Handle{}, domain.NewSyncError(domain.KindMalformedHandle, msgHandleFormat, nil)
	}

	return domain.Handle{Name: name, Tag: tag}, nil
}

// Aggregate folds the player's recent matches in upstream order. Matches the
// player is missing from still count towards Matches.
func Aggregate(matches []api.Match, puuid string) domain.MatchAggregate {
	agg := domain.MatchAggregate{Matches: len(matches)}

	for _, m := range matches {
		player := findPlayer(m.Players.AllPlayers, puuid)
		if player == nil {
			continue
		}

		agg.Kills += player.Stats.Kills
		agg.Deaths += player.Stats.Deaths

		teamID := strings.ToLower(player.Team)
		if teamID == "" {
			continue
		}
		team := m.Teams[teamID]
		if team == nil {
			continue
		}

		if team.HasWon {
			agg.Wins++
		} else {
			agg.Losses++
		}
		agg.RoundsPlayed += team.RoundsWon + team.RoundsLost
	}

	return agg
}

func findPlayer(players []api.MatchPlayer, puuid string) *api.MatchPlayer {
	for i := range players {
		if players[i].Puuid == puuid {
			return &players[i]
		}
	}
	return nil
}

// FormatKD renders kills/deaths with two decimals, or the bare kill count
// when there are no deaths.
func FormatKD(kills, deaths int) string {
	if deaths > 0 {
		return strconv.FormatFloat(float64(kills)/float64(deaths), 'f', 2, 64)
	}
	return strconv.Itoa(kills)
}

func Points(wins, kills int) int {
	return wins*constants.PointsPerWin + kills*constants.PointsPerKill
}

func HoursPlayed(rounds int) float64 {
	return math.Round(float64(rounds)*constants.HoursPerRound*100) / 100
}
