package board

import (
	"fmt"
	"math/rand/v2"
)

// Palette used by generated puzzles, one rune per color.
var palette = []Color{"R", "G", "B", "Y", "P", "O", "C", "M"}

// MaxColors is the largest color count Random accepts.
var MaxColors = len(palette)

// Random fills a board uniformly from the first colors entries of the
// palette. The result is not guaranteed to be clearable.
func Random(size, colors int, r *rand.Rand) (Board, error) {
	if size < 1 {
		return Board{}, fmt.Errorf("invalid board size %d", size)
	}
	if colors < 1 || colors > MaxColors {
		return Board{}, fmt.Errorf("color count must be in [1, %d], got %d", MaxColors, colors)
	}
	b := New(size)
	for i := range b.Cells {
		b.Cells[i] = palette[r.IntN(colors)]
	}
	return b, nil
}

// Solvable generates random boards until solvable reports one clearable,
// mirroring how published puzzles always admit a solution. solvable is
// typically the serial solver; it is injected to keep this package below
// the search engine.
func Solvable(
	size, colors int, r *rand.Rand, solvable func(Board) bool,
) (Board, error) {
	const maxAttempts = 1000
	for range maxAttempts {
		b, err := Random(size, colors, r)
		if err != nil {
			return Board{}, err
		}
		if solvable(b) {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf(
		"could not generate a solvable %dx%d board with %d colors", size, size, colors,
	)
}
