package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmatveev/brickpop-server/internal/board"
)

func TestSolveParallelAlreadySolved(t *testing.T) {
	s, err := SolveParallel(context.Background(), board.New(5), 8)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestSolveParallelMatchesSerial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		solvable bool
	}{
		{"two pairs", "AA\nBB", true},
		{"isolated", "AB\nBA", false},
		{"stranded singleton", "A.G\nAGG\nGGB", false},
		{"nested", "ABBA\nABBA\nCCCC\nDDDD", true},
		{"five colors", "RRGGB\nRRGGB\nYYPPB\nYYPPB\nBBBBB", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			b := mustParse(t, test.text)
			for _, workers := range []int{1, 2, 8, 32} {
				s, err := SolveParallel(context.Background(), b, workers)
				if !test.solvable {
					assert.ErrorIs(t, err, ErrNoSolution, "workers=%d", workers)
					continue
				}
				require.NoError(t, err, "workers=%d", workers)
				assertClears(t, b, s)
			}
		})
	}
}

func TestSolveParallelMoreWorkersThanRootMoves(t *testing.T) {
	// One root move, many workers: the excess partitions are empty and
	// must not stall the coordinator.
	b := mustParse(t, `
		AA
		AA
	`)
	s, err := SolveParallel(context.Background(), b, 16)
	require.NoError(t, err)
	assertClears(t, b, s)
}

func TestSolveParallelZeroWorkers(t *testing.T) {
	b := mustParse(t, "AA\nBB")
	s, err := SolveParallel(context.Background(), b, 0)
	require.NoError(t, err)
	assertClears(t, b, s)
}

func TestSolveParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := mustParse(t, "AA\nBB")
	_, err := SolveParallel(ctx, b, 4)
	// A pre-cancelled context may still lose the race to a worker that
	// finds the solution before its first cancellation check.
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestSolveParallelTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	// Unsolvable board with three root moves: every worker hits the
	// expired context before it can exhaust its partition.
	b := mustParse(t, "ABA\nABA\nBAB")
	_, err := SolveParallel(ctx, b, 2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChunk(t *testing.T) {
	moves := make([]board.Move, 7)
	for i := range moves {
		moves[i].Coord = board.Coord{Row: i}
	}

	tests := []struct {
		n     int
		sizes []int
	}{
		{1, []int{7}},
		{2, []int{4, 3}},
		{3, []int{3, 2, 2}},
		{7, []int{1, 1, 1, 1, 1, 1, 1}},
		{10, []int{1, 1, 1, 1, 1, 1, 1, 0, 0, 0}},
	}
	for _, test := range tests {
		parts := chunk(moves, test.n)
		require.Len(t, parts, test.n, "n=%d", test.n)

		var flat []board.Move
		for i, part := range parts {
			assert.Len(t, part, test.sizes[i], "n=%d part=%d", test.n, i)
			flat = append(flat, part...)
		}
		// Contiguous and order-preserving: the concatenation is the input.
		assert.Equal(t, moves, flat, "n=%d", test.n)
	}
}
