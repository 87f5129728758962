package board

import (
	"fmt"
	"strings"
)

// Textual board form: one line per row, one rune per cell, '.' for an empty
// cell. Used by fixtures, the solve CLI and the HTTP DTOs. Multi-rune color
// codes (the production hex values) round-trip through gob and [FromCells]
// instead and render as '#' here.

const emptyRune = '.'

// Parse reads the textual form. Rows must be non-empty, equally sized and
// as many as they are wide.
func Parse(text string) (Board, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	return FromRows(rows)
}

// FromRows builds a board from one string per row.
func FromRows(rows []string) (Board, error) {
	size := len(rows)
	if size == 0 {
		return Board{}, fmt.Errorf("empty board")
	}
	b := New(size)
	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != size {
			return Board{}, fmt.Errorf(
				"row %d has %d cells, want %d", row, len(runes), size,
			)
		}
		for col, r := range runes {
			if r != emptyRune {
				b.Cells[row*size+col] = Color(r)
			}
		}
	}
	return b, nil
}

// Rows returns the textual form of b, one string per row.
func (b Board) Rows() []string {
	rows := make([]string, b.Size)
	var sb strings.Builder
	for row := 0; row < b.Size; row++ {
		sb.Reset()
		for col := 0; col < b.Size; col++ {
			switch c := b.Cells[row*b.Size+col]; {
			case c == Empty:
				sb.WriteRune(emptyRune)
			case len(c) == 1:
				sb.WriteString(string(c))
			default:
				sb.WriteByte('#')
			}
		}
		rows[row] = sb.String()
	}
	return rows
}

func (b Board) String() string {
	return strings.Join(b.Rows(), "\n")
}
