package board

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) Board {
	t.Helper()
	b, err := Parse(text)
	require.NoError(t, err)
	return b
}

func TestFromCells(t *testing.T) {
	cells := map[Coord]Color{
		{0, 0}: "e74c3c", {0, 1}: "e74c3c",
		{1, 0}: Empty, {1, 1}: "2ecc71",
	}
	b, err := FromCells(2, cells)
	require.NoError(t, err)
	assert.Equal(t, Color("e74c3c"), b.At(Coord{0, 0}))
	assert.Equal(t, Empty, b.At(Coord{1, 0}))
	assert.Equal(t, 3, b.BrickCount())
}

func TestFromCellsIncomplete(t *testing.T) {
	_, err := FromCells(2, map[Coord]Color{{0, 0}: "A"})
	assert.Error(t, err)
}

func TestFromCellsOutOfBounds(t *testing.T) {
	_, err := FromCells(1, map[Coord]Color{{2, 2}: "A"})
	assert.Error(t, err)
}

func TestSolved(t *testing.T) {
	assert.True(t, New(3).Solved())
	assert.False(t, mustParse(t, "A.\n.A").Solved())
}

func TestComponent(t *testing.T) {
	b := mustParse(t, `
		AAB
		BAB
		BBB
	`)
	assert.Len(t, b.Component(Coord{0, 0}), 3)
	assert.Len(t, b.Component(Coord{2, 0}), 6)
	// Diagonal adjacency does not connect.
	assert.NotContains(t, b.Component(Coord{0, 0}), Coord{2, 2})
}

func TestApplyIllegal(t *testing.T) {
	b := mustParse(t, `
		AB
		.C
	`)
	for name, c := range map[string]Coord{
		"empty cell":    {1, 0},
		"singleton":     {0, 0},
		"out of bounds": {5, 5},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := b.Apply(c)
			assert.ErrorIs(t, err, ErrIllegalMove)
		})
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	b := mustParse(t, `
		AA
		BC
	`)
	snapshot := append([]Color(nil), b.Cells...)
	_, err := b.Apply(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, snapshot, b.Cells)
}

func TestApplyGravity(t *testing.T) {
	b := mustParse(t, `
		BB.
		AC.
		AD.
	`)
	next, err := b.Apply(Coord{1, 0})
	require.NoError(t, err)
	// A-pair in column 0 pops; B falls two rows, column 1 is untouched.
	assert.Equal(t, []string{
		".B.",
		".C.",
		"BD.",
	}, next.Rows())
}

func TestApplyCollapse(t *testing.T) {
	b := mustParse(t, `
		.B.
		.B.
		ABC
	`)
	next, err := b.Apply(Coord{0, 1})
	require.NoError(t, err)
	// Column 1 empties out entirely and column 2 closes up leftward.
	assert.Equal(t, []string{
		"...",
		"...",
		"AC.",
	}, next.Rows())
}

func TestApplyGravityBeforeCollapse(t *testing.T) {
	// The C brick on top of the popped column must fall before the column
	// is checked for emptiness, so the column survives the collapse.
	b := mustParse(t, `
		C..
		A..
		AB.
	`)
	next, err := b.Apply(Coord{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"...",
		"...",
		"CB.",
	}, next.Rows())
}

func TestApplyConservation(t *testing.T) {
	b := mustParse(t, `
		ABA
		AAB
		BBB
	`)
	group := b.Component(Coord{0, 0})
	next, err := b.Apply(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, b.BrickCount()-len(group), next.BrickCount())
}

func TestMovesOnePerGroup(t *testing.T) {
	b := mustParse(t, `
		AAB
		CAB
		CDD
	`)
	moves := b.Moves()
	require.Len(t, moves, 4)
	// Canonical representative: first cell of the group in row-major order.
	coords := make([]Coord, len(moves))
	for i, m := range moves {
		coords[i] = m.Coord
	}
	assert.Equal(t, []Coord{{0, 0}, {0, 2}, {1, 0}, {2, 1}}, coords)
}

func TestMovesLegality(t *testing.T) {
	b := mustParse(t, `
		AABB
		CADE
		CFFE
		GHIJ
	`)
	for _, m := range b.Moves() {
		group := b.Component(m.Coord)
		require.GreaterOrEqual(t, len(group), 2, "move %s", m.Coord)
		assert.Equal(t, b.BrickCount()-len(group), m.Next.BrickCount(), "move %s", m.Coord)
	}
}

func TestMovesNoGravityGaps(t *testing.T) {
	b := mustParse(t, `
		ABA
		ABA
		BAB
	`)
	for _, m := range b.Moves() {
		next := m.Next
		for col := 0; col < next.Size; col++ {
			seen := false
			for row := 0; row < next.Size; row++ {
				c := next.At(Coord{row, col})
				if c != Empty {
					seen = true
				} else {
					assert.False(t, seen, "empty cell below a brick in column %d after %s", col, m.Coord)
				}
			}
		}
	}
}

func TestMovesNoEmptyColumnGaps(t *testing.T) {
	b := mustParse(t, `
		A.B
		A.B
		A.B
	`)
	for _, m := range b.Moves() {
		next := m.Next
		seenEmpty := false
		for col := 0; col < next.Size; col++ {
			if next.columnEmpty(col) {
				seenEmpty = true
			} else {
				assert.False(t, seenEmpty, "empty column left of column %d after %s", col, m.Coord)
			}
		}
	}
}

func TestIsolatedBricksHaveNoMoves(t *testing.T) {
	b := mustParse(t, `
		AB
		BA
	`)
	assert.Empty(t, b.Moves())
	assert.False(t, b.Solved())
}

func TestBoardGobRoundTrip(t *testing.T) {
	b := mustParse(t, `
		AB
		BA
	`)
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(b))
	var got Board
	require.NoError(t, gob.NewDecoder(&buf).Decode(&got))
	assert.Equal(t, b, got)
}
