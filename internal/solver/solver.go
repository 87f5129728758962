// Package solver finds move sequences that clear a Brick Pop board. The
// search is an exhaustive depth-first traversal of the move tree: any
// sequence that empties the board is accepted, the first one found wins.

package solver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kmatveev/brickpop-server/internal/board"
)

// ErrNoSolution is the terminal outcome for a board whose move tree has
// been exhausted without clearing it. It is an expected result, not a
// failure; callers branch on it with errors.Is.
var ErrNoSolution = errors.New("no solution")

// Solution is an ordered list of taps. Each coordinate targets the board
// produced by all previous taps; replaying them in order clears the board.
// Any cell of the tapped group is an equivalent target for replay.
type Solution []board.Coord

func (s Solution) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ParseSolution reads the space-separated "row:col" form produced by
// [Solution.String], used to round-trip solutions through storage.
func ParseSolution(text string) (Solution, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Solution{}, nil
	}
	var s Solution
	for _, part := range strings.Fields(text) {
		rowStr, colStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid step %q", part)
		}
		row, err := strconv.Atoi(rowStr)
		if err != nil {
			return nil, fmt.Errorf("invalid step %q: %w", part, err)
		}
		col, err := strconv.Atoi(colStr)
		if err != nil {
			return nil, fmt.Errorf("invalid step %q: %w", part, err)
		}
		s = append(s, board.Coord{Row: row, Col: col})
	}
	return s, nil
}

// Solve runs the single-threaded exhaustive search. It returns the first
// solution in move-enumeration order, the empty solution for an already
// cleared board, or [ErrNoSolution].
func Solve(b board.Board) (Solution, error) {
	steps, ok := dfs(context.Background(), b, nil)
	if !ok {
		return nil, ErrNoSolution
	}
	return steps, nil
}

// dfs explores every move sequence below b and returns the first one that
// clears it, prefixed with steps. A branch that dead-ends reports false and
// the caller moves on to the sibling; nothing is memoized across branches.
// The context aborts the traversal mid-branch once another worker has won.
func dfs(ctx context.Context, b board.Board, steps Solution) (Solution, bool) {
	if b.Solved() {
		return steps, true
	}
	select {
	case <-ctx.Done():
		return nil, false
	default:
	}
	for _, m := range b.Moves() {
		if solution, ok := dfs(ctx, m.Next, append(steps, m.Coord)); ok {
			return solution, true
		}
	}
	return nil, false
}

// Replay applies every step of s to b in order. It fails with
// [board.ErrIllegalMove] if any step does not address a poppable group, and
// returns the final board otherwise.
func Replay(b board.Board, s Solution) (board.Board, error) {
	for i, c := range s {
		next, err := b.Apply(c)
		if err != nil {
			return board.Board{}, fmt.Errorf("step %d: %w", i, err)
		}
		b = next
	}
	return b, nil
}
