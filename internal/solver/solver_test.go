package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmatveev/brickpop-server/internal/board"
)

func mustParse(t *testing.T, text string) board.Board {
	t.Helper()
	b, err := board.Parse(text)
	require.NoError(t, err)
	return b
}

func assertClears(t *testing.T, b board.Board, s Solution) {
	t.Helper()
	final, err := Replay(b, s)
	require.NoError(t, err, "solution must replay without illegal moves")
	assert.True(t, final.Solved(), "replayed solution must clear the board")
}

func TestSolveAlreadySolved(t *testing.T) {
	s, err := Solve(board.New(4))
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestSolveTwoRowPairs(t *testing.T) {
	// Two horizontal pairs: popping either leaves the other, two taps total.
	b := mustParse(t, `
		AA
		BB
	`)
	s, err := Solve(b)
	require.NoError(t, err)
	assert.Len(t, s, 2)
	assertClears(t, b, s)
}

func TestSolveIsolatedBricks(t *testing.T) {
	b := mustParse(t, `
		AB
		BA
	`)
	_, err := Solve(b)
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveStrandedSingleton(t *testing.T) {
	// Legal moves exist but every order leaves the lone B unpoppable; a
	// dead end must be reported, not confused with a cleared board.
	b := mustParse(t, `
		A.G
		AGG
		GGB
	`)
	_, err := Solve(b)
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveExhaustsAllOrders(t *testing.T) {
	// Three poppable pairs, yet every pop order strands singles; the
	// search has to exhaust the whole tree before giving up.
	b := mustParse(t, `
		ABA
		ABA
		BAB
	`)
	_, err := Solve(b)
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveKnownBoards(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"one color", "AAA\nAAA\nAAA"},
		{"two columns", "AB\nAB"},
		{"nested", "ABBA\nABBA\nCCCC\nDDDD"},
		{
			"five colors",
			`
			RRGGB
			RRGGB
			YYPPB
			YYPPB
			BBBBB
			`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := mustParse(t, test.text)
			s, err := Solve(b)
			require.NoError(t, err)
			assert.NotEmpty(t, s)
			assertClears(t, b, s)
		})
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	b := mustParse(t, `
		AAB
		CAB
		CDD
	`)
	first, err1 := Solve(b)
	second, err2 := Solve(b)
	require.Equal(t, err1, err2)
	assert.Equal(t, first, second)
}

func TestReplayRejectsIllegalStep(t *testing.T) {
	b := mustParse(t, `
		AA
		BC
	`)
	_, err := Replay(b, Solution{{Row: 1, Col: 0}})
	assert.ErrorIs(t, err, board.ErrIllegalMove)
}

func TestSolutionStringRoundTrip(t *testing.T) {
	s := Solution{{Row: 0, Col: 0}, {Row: 4, Col: 9}, {Row: 2, Col: 3}}
	assert.Equal(t, "0:0 4:9 2:3", s.String())

	got, err := ParseSolution(s.String())
	require.NoError(t, err)
	assert.Equal(t, s, got)

	empty, err := ParseSolution("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseSolution("1:2 oops")
	assert.Error(t, err)
}
