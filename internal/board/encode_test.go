package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	rows := []string{
		"RG.",
		".GB",
		"BBR",
	}
	b, err := FromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, rows, b.Rows())
	assert.Equal(t, "RG.\n.GB\nBBR", b.String())

	again, err := Parse(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestParseIgnoresSurroundingWhitespace(t *testing.T) {
	b, err := Parse("\n  AB  \n  BA  \n\n")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Size)
	assert.Equal(t, Color("A"), b.At(Coord{0, 0}))
}

func TestParseRejectsRaggedRows(t *testing.T) {
	tests := map[string]string{
		"empty":     "",
		"too short": "AB\nB",
		"too long":  "AB\nBAA",
		"not square": `
			AB
			BA
			AB
		`,
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(text)
			assert.Error(t, err)
		})
	}
}

func TestRowsRendersWideColorsAsHash(t *testing.T) {
	b := New(1)
	b.Cells[0] = "e4eff7"
	assert.Equal(t, []string{"#"}, b.Rows())
}
