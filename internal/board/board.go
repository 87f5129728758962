// Board model for the Brick Pop puzzle: a square grid of colored bricks.
// Tapping a group of two or more adjacent same-colored bricks removes the
// whole group, the remaining bricks fall down and fully emptied columns
// close up to the left.

package board

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned by [Board.Apply] when the target cell is empty
// or its group has fewer than two bricks.
var ErrIllegalMove = errors.New("illegal move")

// Color identifies a brick color. The production decoder uses hex color
// codes; tests and the text format use single letters. The zero value marks
// an empty cell and never joins a group.
type Color string

const Empty Color = ""

// Coord addresses a cell, row 0 at the top. A Coord doubles as a move: the
// cell a player taps to pop the group containing it.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// Board is a Size x Size grid in row-major order. Boards are value objects:
// Apply returns a fresh Board and never touches the receiver, so a parent
// board stays valid while the search explores its siblings. Cells is
// exported for gob encoding and must be treated as read-only.
type Board struct {
	Size  int
	Cells []Color
}

// New returns an all-empty board.
func New(size int) Board {
	return Board{Size: size, Cells: make([]Color, size*size)}
}

// FromCells builds a board from a complete coordinate to color mapping, the
// contract offered to the screenshot decoder. Every coordinate of the grid
// must be present; empty cells are mapped to [Empty].
func FromCells(size int, cells map[Coord]Color) (Board, error) {
	if len(cells) != size*size {
		return Board{}, fmt.Errorf(
			"incomplete cell mapping: got %d cells, want %d", len(cells), size*size,
		)
	}
	b := New(size)
	for c, color := range cells {
		if !b.InBounds(c) {
			return Board{}, fmt.Errorf("cell %s out of bounds for size %d", c, size)
		}
		b.Cells[c.Row*size+c.Col] = color
	}
	return b, nil
}

func (b Board) InBounds(c Coord) bool {
	return 0 <= c.Row && c.Row < b.Size && 0 <= c.Col && c.Col < b.Size
}

// At returns the color at c, which must be in bounds.
func (b Board) At(c Coord) Color {
	return b.Cells[c.Row*b.Size+c.Col]
}

// Solved reports whether every cell is empty.
func (b Board) Solved() bool {
	for _, c := range b.Cells {
		if c != Empty {
			return false
		}
	}
	return true
}

// BrickCount returns the number of non-empty cells.
func (b Board) BrickCount() (n int) {
	for _, c := range b.Cells {
		if c != Empty {
			n++
		}
	}
	return
}

func (b Board) coord(i int) Coord {
	return Coord{Row: i / b.Size, Col: i % b.Size}
}

// flood collects the group of same-colored cells 4-connected to seed i.
// Empty cells never match.
func (b Board) flood(i int) []int {
	color := b.Cells[i]
	if color == Empty {
		return nil
	}
	var (
		group   = []int{i}
		visited = map[int]bool{i: true}
	)
	for head := 0; head < len(group); head++ {
		row, col := group[head]/b.Size, group[head]%b.Size
		for _, n := range [4]Coord{
			{row - 1, col}, {row + 1, col}, {row, col - 1}, {row, col + 1},
		} {
			if !b.InBounds(n) {
				continue
			}
			k := n.Row*b.Size + n.Col
			if !visited[k] && b.Cells[k] == color {
				visited[k] = true
				group = append(group, k)
			}
		}
	}
	return group
}

// Component returns the coordinates of the same-colored group containing c,
// or nil when c is empty.
func (b Board) Component(c Coord) []Coord {
	group := b.flood(c.Row*b.Size + c.Col)
	coords := make([]Coord, len(group))
	for i, j := range group {
		coords[i] = b.coord(j)
	}
	return coords
}

// Apply pops the group at c and returns the settled board. The move is
// illegal when c addresses an empty cell or a group of fewer than two
// bricks; b is never modified.
func (b Board) Apply(c Coord) (Board, error) {
	if !b.InBounds(c) {
		return Board{}, fmt.Errorf("%w: %s out of bounds", ErrIllegalMove, c)
	}
	group := b.flood(c.Row*b.Size + c.Col)
	if len(group) < 2 {
		return Board{}, fmt.Errorf("%w: no poppable group at %s", ErrIllegalMove, c)
	}
	return b.pop(group), nil
}

// Move pairs a tap coordinate with the board it produces.
type Move struct {
	Coord Coord
	Next  Board
}

// Moves enumerates the legal moves of b, one per poppable group, seeded at
// the group's first cell in row-major order. Any cell of the group is an
// equivalent tap target; the representative is canonical so that move
// enumeration is deterministic.
func (b Board) Moves() []Move {
	var (
		moves   []Move
		visited = make([]bool, len(b.Cells))
	)
	for i, color := range b.Cells {
		if visited[i] || color == Empty {
			continue
		}
		group := b.flood(i)
		for _, j := range group {
			visited[j] = true
		}
		if len(group) < 2 {
			continue
		}
		moves = append(moves, Move{Coord: b.coord(i), Next: b.pop(group)})
	}
	return moves
}

func (b Board) pop(group []int) Board {
	next := Board{Size: b.Size, Cells: make([]Color, len(b.Cells))}
	copy(next.Cells, b.Cells)
	for _, i := range group {
		next.Cells[i] = Empty
	}
	next.settle()
	return next
}

// settle drops bricks to the bottom of their columns, then closes fully
// empty columns by shifting the columns right of them one step left.
// Gravity runs before the collapse; the order is part of the puzzle rules.
// Only called on a freshly copied board.
func (b *Board) settle() {
	column := make([]Color, 0, b.Size)
	for col := 0; col < b.Size; col++ {
		column = column[:0]
		for row := b.Size - 1; row >= 0; row-- {
			if c := b.Cells[row*b.Size+col]; c != Empty {
				column = append(column, c)
			}
		}
		for row := b.Size - 1; row >= 0; row-- {
			if i := b.Size - 1 - row; i < len(column) {
				b.Cells[row*b.Size+col] = column[i]
			} else {
				b.Cells[row*b.Size+col] = Empty
			}
		}
	}

	keep := make([]int, 0, b.Size)
	for col := 0; col < b.Size; col++ {
		if !b.columnEmpty(col) {
			keep = append(keep, col)
		}
	}
	if len(keep) == b.Size {
		return
	}
	for row := 0; row < b.Size; row++ {
		for i, col := range keep {
			b.Cells[row*b.Size+i] = b.Cells[row*b.Size+col]
		}
		for i := len(keep); i < b.Size; i++ {
			b.Cells[row*b.Size+i] = Empty
		}
	}
}

func (b Board) columnEmpty(col int) bool {
	for row := 0; row < b.Size; row++ {
		if b.Cells[row*b.Size+col] != Empty {
			return false
		}
	}
	return true
}
