package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRandomPuzzleDTO(t *testing.T) {
	query, err := url.ParseQuery("size=10&colors=4&extra=ignored")
	require.NoError(t, err)

	dto, err := ParseRandomPuzzleDTO(query)
	require.NoError(t, err)
	assert.Equal(t, RandomPuzzleDTO{Size: 10, Colors: 4}, dto)

	_, err = ParseRandomPuzzleDTO(url.Values{"size": {"10"}})
	assert.Error(t, err, "colors is required")
}

func TestParseSolveDTO(t *testing.T) {
	dto, err := ParseSolveDTO(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 0, dto.Workers, "workers defaults to the configured count")

	dto, err = ParseSolveDTO(url.Values{"workers": {"8"}})
	require.NoError(t, err)
	assert.Equal(t, 8, dto.Workers)

	_, err = ParseSolveDTO(url.Values{"workers": {"-1"}})
	assert.Error(t, err)
}
