package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Flags(t *testing.T) {
	limit := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "n", limit.Shorthand)

	mode := searchCmd.Flags().Lookup("mode")
	require.NotNil(t, mode)
	assert.Equal(t, "auto", mode.DefValue)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_Modes(t *testing.T) {
	tests := []struct {
		args []string
		mode domain.SearchMode
		topK int
	}{
		{[]string{"search", "defense"}, domain.SearchModeAuto, 0},
		{[]string{"search", "--mode", "keyword", "defense"}, domain.SearchModeKeyword, 0},
		{[]string{"search", "-m", "SUBSTRING", "-n", "3", "defense"}, domain.SearchModeSubstring, 3},
		{[]string{"search", "--mode", "vector", "--limit", "7", "defense"}, domain.SearchModeVector, 7},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			ts, cleanup := setupTestServices()
			defer cleanup()

			_, err := execute(tt.args...)

			require.NoError(t, err)
			assert.Equal(t, "defense", ts.context.query)
			assert.Equal(t, tt.mode, ts.context.opts.Mode)
			assert.Equal(t, tt.topK, ts.context.opts.TopK)
		})
	}
}

func TestSearchCmd_InvalidMode(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search", "--mode", "fuzzy", "defense")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchCmd_Table(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.context.ctx = samplePassages()

	out, err := execute("search", "defense")

	require.NoError(t, err)
	assert.Contains(t, out, "Results (vector):")
	assert.Contains(t, out, "[1] docA #0 (0.91)")
	assert.Contains(t, out, "[2] docB #3 (0.72)")
	assert.Contains(t, out, "defense budget review")
}

func TestSearchCmd_NoResults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("search", "nothing")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.context.ctx = samplePassages()

	out, err := execute("search", "--json", "defense")
	require.NoError(t, err)

	var got []searchResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "docA", got[0].Source)
	assert.Equal(t, "vector", got[0].Strategy)
	assert.Equal(t, 3, got[1].Position)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "a b c", snippet("a\n b\t\tc", 10))
	assert.Equal(t, "abcdefg...", snippet("abcdefghijklmnop", 10))
}
