package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

func TestContextCmd_PrintsRenderedText(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.context.ctx = samplePassages()

	out, err := execute("context", "-n", "2", "defense")

	require.NoError(t, err)
	assert.Equal(t, domain.SearchModeAuto, ts.context.opts.Mode)
	assert.Equal(t, 2, ts.context.opts.TopK)
	assert.Contains(t, out, "[From docA]\npreemptive defense policy\n\n[From docB]")
}

func TestContextCmd_NoPassages(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("context", "nothing")

	require.NoError(t, err)
	assert.Contains(t, out, "No matching passages.")
}

func TestContextCmd_NotConfigured(t *testing.T) {
	defer resetFlags()
	SetServices(nil)

	_, err := execute("context", "defense")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context service not configured")
}
