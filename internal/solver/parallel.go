package solver

import (
	"context"

	"github.com/kmatveev/brickpop-server/internal/board"
)

// SolveParallel races workers goroutines over the move tree. The root-level
// moves are split into contiguous, near-equal partitions, one worker per
// non-empty partition; each worker runs the same exhaustive traversal as
// [Solve] over its branches. The first solution reported wins and the rest
// of the workers are cancelled; their partial work is discarded. Search
// cost depends heavily on which root branch hides a short solution, so
// racing independent partitions pays off without any shared search state.
//
// All workers exhausting their partitions yields [ErrNoSolution]. A
// cancelled or expired ctx surfaces as ctx.Err().
func SolveParallel(ctx context.Context, b board.Board, workers int) (Solution, error) {
	if b.Solved() {
		return Solution{}, nil
	}
	if workers < 1 {
		workers = 1
	}

	roots := b.Moves()
	if len(roots) == 0 {
		// Dead end at the root, nothing to dispatch.
		return nil, ErrNoSolution
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered to one slot per worker: a late reporter never blocks after
	// the coordinator has stopped listening.
	results := make(chan Solution, workers)

	launched := 0
	for _, part := range chunk(roots, workers) {
		if len(part) == 0 {
			continue
		}
		launched++
		go func(part []board.Move) {
			results <- search(ctx, part)
		}(part)
	}

	for range launched {
		if solution := <-results; solution != nil {
			return solution, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoSolution
}

// search runs the exhaustive traversal over each branch of a worker's
// partition in turn, returning the first solution or nil.
func search(ctx context.Context, branches []board.Move) Solution {
	for _, m := range branches {
		if solution, ok := dfs(ctx, m.Next, Solution{m.Coord}); ok {
			return solution
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
	return nil
}

// chunk splits moves into n contiguous partitions whose sizes differ by at
// most one, preserving order; trailing partitions are empty when there are
// fewer moves than partitions.
func chunk(moves []board.Move, n int) [][]board.Move {
	parts := make([][]board.Move, 0, n)
	size, rem := len(moves)/n, len(moves)%n
	i := 0
	for p := 0; p < n; p++ {
		l := size
		if p < rem {
			l++
		}
		parts = append(parts, moves[i:i+l])
		i += l
	}
	return parts
}
