package repository

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kmatveev/brickpop-server/internal/board"
)

type Puzzle struct {
	PuzzleId  int64
	PlayerId  *int64
	Size      int
	Colors    *int
	Board     []byte
	Solved    bool
	Solution  *string
	SolveMs   *float64
	Workers   *int
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// DecodeBoard restores the gob-encoded board blob.
func (p Puzzle) DecodeBoard() (board.Board, error) {
	var b board.Board
	err := gob.NewDecoder(bytes.NewReader(p.Board)).Decode(&b)
	return b, err
}

type CreatePuzzleParams struct {
	PlayerId *int64
	Colors   *int
	Board    board.Board
}

func (q *Queries) CreatePuzzle(
	ctx context.Context, params CreatePuzzleParams,
) (*Puzzle, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(params.Board); err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"size":  params.Board.Size,
		"board": buf.Bytes(),
	}
	if params.PlayerId != nil {
		args["player_id"] = *params.PlayerId
	}
	if params.Colors != nil {
		args["colors"] = *params.Colors
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle (player_id, size, colors, board)
		VALUES (@player_id, @size, @colors, @board)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}

func (q *Queries) FetchPuzzle(ctx context.Context, puzzleId int64) (*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM puzzle WHERE puzzle_id = $1", puzzleId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}

type SaveSolutionParams struct {
	PuzzleId int64
	Solution string
	SolveMs  float64
	Workers  int
}

func (q *Queries) SaveSolution(
	ctx context.Context, params SaveSolutionParams,
) (*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx,
		`UPDATE puzzle
		SET solved = true
			, solution = @solution
			, solve_ms = @solve_ms
			, workers = @workers
			, updated_at = now()
		WHERE puzzle_id = @puzzle_id
		RETURNING *;`,
		pgx.NamedArgs{
			"puzzle_id": params.PuzzleId,
			"solution":  params.Solution,
			"solve_ms":  params.SolveMs,
			"workers":   params.Workers,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}
