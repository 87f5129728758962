package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kmatveev/brickpop-server/internal/board"
	"github.com/kmatveev/brickpop-server/internal/config"
	"github.com/kmatveev/brickpop-server/internal/middleware"
	"github.com/kmatveev/brickpop-server/internal/repository"
	"github.com/kmatveev/brickpop-server/internal/solver"
)

// MaxBoardSize caps accepted puzzles; the production game is 10x10 and the
// exhaustive search gets hopeless well past that.
const MaxBoardSize = 16

type Puzzle struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	solver *config.Solver
	rnd    *rand.Rand
}

func NewPuzzle(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	solverCfg *config.Solver,
	rnd *rand.Rand,
) *Puzzle {
	return &Puzzle{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		solver: solverCfg,
		rnd:    rnd,
	}
}

func (h Puzzle) playerId(r *http.Request) *int64 {
	claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if !ok {
		return nil
	}
	return &claims.PlayerId
}

func (h Puzzle) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreatePuzzleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	b, err := board.FromRows(dto.Rows)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	if b.Size > MaxBoardSize {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(
			errors.New("board too large"),
		))
		return
	}

	puzzle, err := h.repo.CreatePuzzle(r.Context(), repository.CreatePuzzleParams{
		PlayerId: h.playerId(r),
		Board:    b,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to insert puzzle", "error", err)
		return
	}

	h.sendPuzzle(w, puzzle)
}

func (h Puzzle) CreateRandom(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseRandomPuzzleDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	if dto.Size > MaxBoardSize {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(errors.New("board too large")))
		return
	}

	b, err := board.Solvable(dto.Size, dto.Colors, h.rnd, func(b board.Board) bool {
		_, err := solver.Solve(b)
		return err == nil
	})
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	puzzle, err := h.repo.CreatePuzzle(r.Context(), repository.CreatePuzzleParams{
		PlayerId: h.playerId(r),
		Colors:   &dto.Colors,
		Board:    b,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to insert puzzle", "error", err)
		return
	}

	h.sendPuzzle(w, puzzle)
}

func (h Puzzle) fetch(w http.ResponseWriter, r *http.Request) *repository.Puzzle {
	puzzleId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}

	puzzle, err := h.repo.FetchPuzzle(r.Context(), puzzleId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch puzzle from db", "error", err)
		return nil
	}
	return puzzle
}

func (h Puzzle) Fetch(w http.ResponseWriter, r *http.Request) {
	if puzzle := h.fetch(w, r); puzzle != nil {
		h.sendPuzzle(w, puzzle)
	}
}

type SolveResultDTO struct {
	Solvable bool       `json:"solvable"`
	Puzzle   *PuzzleDTO `json:"puzzle,omitempty"`
}

func (h Puzzle) Solve(w http.ResponseWriter, r *http.Request) {
	puzzle := h.fetch(w, r)
	if puzzle == nil {
		return
	}

	if puzzle.Solved {
		h.sendPuzzle(w, puzzle)
		return
	}

	dto, err := ParseSolveDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	workers := dto.Workers
	if workers == 0 {
		workers = h.solver.Workers
	}

	b, err := puzzle.DecodeBoard()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid puzzle.board", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.solver.Timeout)
	defer cancel()

	start := time.Now()
	solution, err := solver.SolveParallel(ctx, b, workers)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, solver.ErrNoSolution):
		// A dead end is a legitimate outcome, not a failure.
		sendJSONOrLog(w, h.logger, SolveResultDTO{Solvable: false})
		return
	case errors.Is(err, context.DeadlineExceeded):
		w.WriteHeader(http.StatusRequestTimeout)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("solver failed", "error", err)
		return
	}

	h.logger.Info(
		"puzzle solved",
		slog.Int64("puzzleId", puzzle.PuzzleId),
		slog.Int("steps", len(solution)),
		slog.Int("workers", workers),
		slog.Duration("elapsed", elapsed),
	)

	updated, err := h.repo.SaveSolution(r.Context(), repository.SaveSolutionParams{
		PuzzleId: puzzle.PuzzleId,
		Solution: solution.String(),
		SolveMs:  float64(elapsed) / float64(time.Millisecond),
		Workers:  workers,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to save solution", "error", err)
		return
	}

	dtoOut, err := NewPuzzleDTO(updated)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to build puzzle dto", "error", err)
		return
	}
	sendJSONOrLog(w, h.logger, SolveResultDTO{Solvable: true, Puzzle: dtoOut})
}

func (h Puzzle) Highscores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter repository.HighscoreFilter
	if username := query.Get("username"); username != "" {
		filter.Username = &username
	}
	if sizeStr := query.Get("size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		filter.Size = &size
	}

	highscores, err := h.repo.FastestSolves(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, highscores)
}

func (h Puzzle) sendPuzzle(w http.ResponseWriter, puzzle *repository.Puzzle) {
	dto, err := NewPuzzleDTO(puzzle)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to build puzzle dto", "error", err)
		return
	}
	sendJSONOrLog(w, h.logger, dto)
}
