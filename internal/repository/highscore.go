package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type Highscore struct {
	PuzzleId int64   `json:"puzzle_id"`
	Username *string `json:"username"`
	Size     int     `json:"size"`
	Colors   *int    `json:"colors"`
	Steps    int     `json:"steps"`
	SolveMs  float64 `json:"solve_ms"`
	Workers  *int    `json:"workers"`
}

type HighscoreFilter struct {
	Username *string
	Size     *int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Size != nil {
		clauses = append(clauses, "size = @size")
		args["size"] = *f.Size
	}
	return strings.Join(clauses, " AND "), args
}

// FastestSolves lists solved puzzles ordered by search time.
func (q *Queries) FastestSolves(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		puzzle_id,
		username,
		size,
		colors,
		coalesce(array_length(string_to_array(nullif(solution, ''), ' '), 1), 0) steps,
		solve_ms,
		workers
	FROM puzzle
		LEFT OUTER JOIN player using (player_id)
	WHERE
		solved = true
		AND solution IS NOT NULL
		AND solve_ms IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY solve_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
