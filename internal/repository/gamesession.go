package repository

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gridfall/sweeper-server/internal/game"
)

// GameSession is one stored game. State holds the gob-encoded
// game.Game; the scalar columns are denormalized for listing and
// record queries.
type GameSession struct {
	GameSessionId int64              `db:"game_session_id"`
	PlayerId      *int64             `db:"player_id"`
	Rows          int32              `db:"rows"`
	Cols          int32              `db:"cols"`
	MineCount     int32              `db:"mine_count"`
	Difficulty    string             `db:"difficulty"`
	Status        string             `db:"status"`
	State         []byte             `db:"state"`
	StartedAt     pgtype.Timestamptz `db:"started_at"`
	EndedAt       pgtype.Timestamptz `db:"ended_at"`
}

// Game decodes the stored engine state.
func (s *GameSession) Game() (*game.Game, error) {
	var g game.Game
	if err := gob.NewDecoder(bytes.NewReader(s.State)).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

func encodeGame(g *game.Game) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (q *Queries) CreateGameSession(
	ctx context.Context, playerId *int64, g *game.Game,
) (*GameSession, error) {
	state, err := encodeGame(g)
	if err != nil {
		return nil, err
	}
	rows, _ := q.db.Query(ctx, `
		INSERT INTO game_session (
			player_id, rows, cols, mine_count, difficulty, status, state
		)
		VALUES (
			@player_id, @rows, @cols, @mine_count, @difficulty, @status, @state
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"player_id":  playerId,
			"rows":       g.Board.Rows,
			"cols":       g.Board.Cols,
			"mine_count": g.Board.MineCount,
			"difficulty": g.Difficulty.String(),
			"status":     g.Status.String(),
			"state":      state,
		})
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) GetGameSession(
	ctx context.Context, gameSessionId int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(ctx,
		`SELECT * FROM game_session WHERE game_session_id = $1;`,
		gameSessionId)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// UpdateGameSession writes the mutated engine state back. ended_at is
// stamped server-side the first time the session leaves the playing
// status.
func (q *Queries) UpdateGameSession(
	ctx context.Context, session *GameSession, g *game.Game,
) error {
	state, err := encodeGame(g)
	if err != nil {
		return err
	}
	_, err = q.db.Exec(ctx, `
		UPDATE game_session
		SET status = @status
			, state = @state
			, ended_at = CASE
				WHEN @status <> 'playing' AND ended_at IS NULL THEN now()
				ELSE ended_at
			END
		WHERE game_session_id = @game_session_id;`,
		pgx.NamedArgs{
			"game_session_id": session.GameSessionId,
			"status":          g.Status.String(),
			"state":           state,
		})
	return err
}

// Record is one winning game for the leaderboards.
type Record struct {
	GameSessionId int64              `db:"game_session_id"`
	Username      *string            `db:"username"`
	Rows          int32              `db:"rows"`
	Cols          int32              `db:"cols"`
	MineCount     int32              `db:"mine_count"`
	Difficulty    string             `db:"difficulty"`
	StartedAt     pgtype.Timestamptz `db:"started_at"`
	EndedAt       pgtype.Timestamptz `db:"ended_at"`
}

func (q *Queries) GetRecords(ctx context.Context, limit int) ([]*Record, error) {
	rows, _ := q.db.Query(ctx, `
		SELECT gs.game_session_id, p.username,
			gs.rows, gs.cols, gs.mine_count, gs.difficulty,
			gs.started_at, gs.ended_at
		FROM game_session gs
		LEFT JOIN player p USING (player_id)
		WHERE gs.status = 'won'
		ORDER BY gs.ended_at - gs.started_at ASC
		LIMIT $1;`,
		limit)
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Record])
}

func (q *Queries) GetPlayerRecords(
	ctx context.Context, playerId int64, limit int,
) ([]*Record, error) {
	rows, _ := q.db.Query(ctx, `
		SELECT gs.game_session_id, p.username,
			gs.rows, gs.cols, gs.mine_count, gs.difficulty,
			gs.started_at, gs.ended_at
		FROM game_session gs
		JOIN player p USING (player_id)
		WHERE gs.status = 'won' AND gs.player_id = $1
		ORDER BY gs.ended_at - gs.started_at ASC
		LIMIT $2;`,
		playerId, limit)
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Record])
}
