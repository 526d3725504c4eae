package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

func intPtr(n int) *int { return &n }

func TestIngestCmd_Flags(t *testing.T) {
	for _, name := range []string{"append", "size", "overlap"} {
		assert.NotNil(t, ingestCmd.Flags().Lookup(name), name)
	}
}

func TestIngestCmd_RequiresRoot(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("ingest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_PassesOptions(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("ingest", "--append", "--size", "200", "--overlap", "20", "./notes")

	require.NoError(t, err)
	assert.Equal(t, "./notes", ts.ingest.root)
	assert.Equal(t, 200, ts.ingest.opts.ChunkSize)
	assert.True(t, ts.ingest.opts.Append)
	require.NotNil(t, ts.ingest.opts.Overlap)
	assert.Equal(t, 20, *ts.ingest.opts.Overlap)
}

func TestIngestCmd_OverlapFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want *int
	}{
		{"unset", []string{"ingest", "./notes"}, nil},
		{"explicit zero", []string{"ingest", "--overlap", "0", "./notes"}, intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, cleanup := setupTestServices()
			defer cleanup()

			_, err := execute(tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ts.ingest.opts.Overlap)
		})
	}
}

func TestIngestCmd_PrintsSummaryAndSkips(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.ingest.summary = &domain.IngestSummary{
		Root:       "./notes",
		Containers: 2,
		Ingested:   3,
		Skipped:    1,
		Chunks:     12,
		Replaced:   4,
		Skips: []domain.SkipRecord{
			{ItemID: "notes/scan.png", Name: "scan.png", MIMEType: "image/png", Reason: "unsupported type"},
		},
		Duration: fixedDuration,
	}

	out, err := execute("ingest", "./notes")

	require.NoError(t, err)
	assert.Contains(t, out, "Ingested ./notes")
	assert.Contains(t, out, "3 ingested, 1 skipped")
	assert.Contains(t, out, "12 (replaced 4)")
	assert.Contains(t, out, "scan.png (image/png): unsupported type")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "grokpedia index build")
}

func TestIngestCmd_NothingIngested(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("ingest", "./empty")

	require.NoError(t, err)
	assert.NotContains(t, out, "Skipped:")
	assert.NotContains(t, out, "index build")
}

func TestIngestCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.ingest.err = domain.ErrUnsupportedType

	_, err := execute("ingest", "ftp://nowhere")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestIngestCmd_NotConfigured(t *testing.T) {
	defer resetFlags()
	SetServices(nil)

	_, err := execute("ingest", "./notes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}
