// Queries from queries/user_stats.sql, in sqlc layout. Keep the two in step.

package db

import (
	"context"
	"time"
)

const countUserStats = `-- name: CountUserStats :one
SELECT COUNT(*)
FROM user_stats
WHERE user_id = ? AND game_id = ? AND date = ?
`

type CountUserStatsParams struct {
	UserID string
	GameID string
	Date   string
}

func (q *Queries) CountUserStats(ctx context.Context, arg CountUserStatsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countUserStats, arg.UserID, arg.GameID, arg.Date)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getPointsLeaderboard = `-- name: GetPointsLeaderboard :many
SELECT user_id,
       CAST(SUM(points_earned) AS INTEGER) AS total_points,
       CAST(SUM(hours_played) AS REAL) AS total_hours
FROM user_stats
GROUP BY user_id
ORDER BY total_points DESC, user_id ASC
LIMIT ?
`

type GetPointsLeaderboardRow struct {
	UserID      string
	TotalPoints int64
	TotalHours  float64
}

func (q *Queries) GetPointsLeaderboard(ctx context.Context, limit int64) ([]GetPointsLeaderboardRow, error) {
	rows, err := q.db.QueryContext(ctx, getPointsLeaderboard, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetPointsLeaderboardRow
	for rows.Next() {
		var i GetPointsLeaderboardRow
		if err := rows.Scan(&i.UserID, &i.TotalPoints, &i.TotalHours); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getUserStat = `-- name: GetUserStat :one
SELECT id, user_id, game_id, date, kills, deaths, wins, losses, points_earned, hours_played, created_at, updated_at
FROM user_stats
WHERE user_id = ? AND game_id = ? AND date = ?
`

type GetUserStatParams struct {
	UserID string
	GameID string
	Date   string
}

func (q *Queries) GetUserStat(ctx context.Context, arg GetUserStatParams) (UserStat, error) {
	row := q.db.QueryRowContext(ctx, getUserStat, arg.UserID, arg.GameID, arg.Date)
	var i UserStat
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.GameID,
		&i.Date,
		&i.Kills,
		&i.Deaths,
		&i.Wins,
		&i.Losses,
		&i.PointsEarned,
		&i.HoursPlayed,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserTotals = `-- name: GetUserTotals :one
SELECT CAST(COALESCE(SUM(points_earned), 0) AS INTEGER) AS total_points,
       CAST(COALESCE(SUM(hours_played), 0) AS REAL) AS total_hours
FROM user_stats
WHERE user_id = ?
`

type GetUserTotalsRow struct {
	TotalPoints int64
	TotalHours  float64
}

func (q *Queries) GetUserTotals(ctx context.Context, userID string) (GetUserTotalsRow, error) {
	row := q.db.QueryRowContext(ctx, getUserTotals, userID)
	var i GetUserTotalsRow
	err := row.Scan(&i.TotalPoints, &i.TotalHours)
	return i, err
}

const listUserStatsByUser = `-- name: ListUserStatsByUser :many
SELECT id, user_id, game_id, date, kills, deaths, wins, losses, points_earned, hours_played, created_at, updated_at
FROM user_stats
WHERE user_id = ?
ORDER BY date DESC, game_id ASC
LIMIT ?
`

type ListUserStatsByUserParams struct {
	UserID string
	Limit  int64
}

func (q *Queries) ListUserStatsByUser(ctx context.Context, arg ListUserStatsByUserParams) ([]UserStat, error) {
	rows, err := q.db.QueryContext(ctx, listUserStatsByUser, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []UserStat
	for rows.Next() {
		var i UserStat
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.GameID,
			&i.Date,
			&i.Kills,
			&i.Deaths,
			&i.Wins,
			&i.Losses,
			&i.PointsEarned,
			&i.HoursPlayed,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertUserStat = `-- name: UpsertUserStat :exec
INSERT INTO user_stats (
    id, user_id, game_id, date, kills, deaths, wins, losses, points_earned, hours_played, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, game_id, date) DO UPDATE SET
    kills = excluded.kills,
    deaths = excluded.deaths,
    wins = excluded.wins,
    losses = excluded.losses,
    points_earned = excluded.points_earned,
    hours_played = excluded.hours_played,
    updated_at = excluded.updated_at
`

type UpsertUserStatParams struct {
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

func (q *Queries) UpsertUserStat(ctx context.Context, arg UpsertUserStatParams) error {
	_, err := q.db.ExecContext(ctx, upsertUserStat,
		arg.ID,
		arg.UserID,
		arg.GameID,
		arg.Date,
		arg.Kills,
		arg.Deaths,
		arg.Wins,
		arg.Losses,
		arg.PointsEarned,
		arg.HoursPlayed,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
