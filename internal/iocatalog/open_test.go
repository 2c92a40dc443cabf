package iocatalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaselineHandleRejectsWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "srs.db")

	recs, err := BaselineSeed()
	require.NoError(t, err)
	require.NoError(t, CreateBaseline(ctx, path, recs))

	tier, err := NewBaselineTier(path)
	require.NoError(t, err)
	defer tier.Close()

	// the engine, not just the writable flag, must refuse the write
	st := tier.(*sqliteTier)
	_, err = st.db.ExecContext(ctx, "DELETE FROM tbl_srs")
	require.Error(t, err, "baseline handle accepted a write")

	rec, err := tier.BySrsID(ctx, 4326)
	require.NoError(t, err)
	assert.Equal(t, "WGS 84", rec.Description)
}
