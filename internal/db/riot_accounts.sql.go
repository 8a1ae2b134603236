// Queries from queries/riot_accounts.sql, in sqlc layout. Keep the two in step.

package db

import (
	"context"
	"time"
)

const getRiotAccountByUser = `-- name: GetRiotAccountByUser :one
SELECT user_id, puuid, name, tag, region, account_level, card, rank_name, elo, last_synced_at, created_at, updated_at
FROM riot_accounts
WHERE user_id = ?
`

func (q *Queries) GetRiotAccountByUser(ctx context.Context, userID string) (RiotAccount, error) {
	row := q.db.QueryRowContext(ctx, getRiotAccountByUser, userID)
	var i RiotAccount
	err := row.Scan(
		&i.UserID,
		&i.Puuid,
		&i.Name,
		&i.Tag,
		&i.Region,
		&i.AccountLevel,
		&i.Card,
		&i.RankName,
		&i.Elo,
		&i.LastSyncedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertRiotAccount = `-- name: UpsertRiotAccount :exec
INSERT INTO riot_accounts (
    user_id, puuid, name, tag, region, account_level, card, rank_name, elo, last_synced_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    puuid = excluded.puuid,
    name = excluded.name,
    tag = excluded.tag,
    region = excluded.region,
    account_level = excluded.account_level,
    card = excluded.card,
    rank_name = excluded.rank_name,
    elo = excluded.elo,
    last_synced_at = excluded.last_synced_at,
    updated_at = excluded.updated_at
`

type UpsertRiotAccountParams struct {
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

func (q *Queries) UpsertRiotAccount(ctx context.Context, arg UpsertRiotAccountParams) error {
	_, err := q.db.ExecContext(ctx, upsertRiotAccount,
		arg.UserID,
		arg.Puuid,
		arg.Name,
		arg.Tag,
		arg.Region,
		arg.AccountLevel,
		arg.Card,
		arg.RankName,
		arg.Elo,
		arg.LastSyncedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
