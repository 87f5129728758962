package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := Random(10, 4, r)
	require.NoError(t, err)
	assert.Equal(t, 100, b.BrickCount(), "a generated board has no holes")
	seen := map[Color]bool{}
	for _, c := range b.Cells {
		seen[c] = true
	}
	assert.LessOrEqual(t, len(seen), 4)
}

func TestRandomRejectsBadParams(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	_, err := Random(0, 3, r)
	assert.Error(t, err)
	_, err = Random(5, 0, r)
	assert.Error(t, err)
	_, err = Random(5, MaxColors+1, r)
	assert.Error(t, err)
}

func TestSolvable(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	// A one-color board is always clearable in a single tap.
	b, err := Solvable(3, 1, r, func(b Board) bool {
		return len(b.Moves()) > 0
	})
	require.NoError(t, err)
	assert.Equal(t, 9, b.BrickCount())
}

func TestSolvableGivesUp(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	_, err := Solvable(3, 2, r, func(Board) bool { return false })
	assert.Error(t, err)
}
