// Queries from queries/games.sql, in sqlc layout. Keep the two in step.

package db

import (
	"context"
)

const getGameByName = `-- name: GetGameByName :one
SELECT id, name, created_at
FROM games
WHERE name = ?
`

func (q *Queries) GetGameByName(ctx context.Context, name string) (Game, error) {
	row := q.db.QueryRowContext(ctx, getGameByName, name)
	var i Game
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt)
	return i, err
}
