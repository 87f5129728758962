package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/kmatveev/brickpop-server/internal/board"
	"github.com/kmatveev/brickpop-server/internal/repository"
	"github.com/kmatveev/brickpop-server/internal/solver"
)

// CreatePuzzleDTO is the JSON body of POST /puzzle: one string per row,
// '.' for an empty cell.
type CreatePuzzleDTO struct {
	Rows []string `json:"rows"`
}

type RandomPuzzleDTO struct {
	Size   int `schema:"size,required"`
	Colors int `schema:"colors,required"`
}

func ParseRandomPuzzleDTO(src map[string][]string) (RandomPuzzleDTO, error) {
	var dto RandomPuzzleDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type SolveDTO struct {
	Workers int `schema:"workers"`
}

func ParseSolveDTO(src map[string][]string) (SolveDTO, error) {
	var dto SolveDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	if err == nil && dto.Workers < 0 {
		err = fmt.Errorf("workers must be positive")
	}
	return dto, err
}

type PuzzleDTO struct {
	PuzzleId string        `json:"puzzle_id"`
	Size     int           `json:"size"`
	Colors   *int          `json:"colors,omitempty"`
	Rows     []string      `json:"rows"`
	Solved   bool          `json:"solved"`
	Solution []board.Coord `json:"solution,omitempty"`
	SolveMs  *float64      `json:"solve_ms,omitempty"`
	Workers  *int          `json:"workers,omitempty"`
}

func NewPuzzleDTO(p *repository.Puzzle) (*PuzzleDTO, error) {
	b, err := p.DecodeBoard()
	if err != nil {
		return nil, fmt.Errorf("invalid puzzle.board blob: %w", err)
	}
	dto := &PuzzleDTO{
		PuzzleId: strconv.FormatInt(p.PuzzleId, 10),
		Size:     p.Size,
		Colors:   p.Colors,
		Rows:     b.Rows(),
		Solved:   p.Solved,
		SolveMs:  p.SolveMs,
		Workers:  p.Workers,
	}
	if p.Solution != nil {
		steps, err := solver.ParseSolution(*p.Solution)
		if err != nil {
			return nil, fmt.Errorf("invalid puzzle.solution: %w", err)
		}
		dto.Solution = steps
	}
	return dto, nil
}
