package updater

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestAcquireMarker_RefusesSecondRun ensures a fresh marker blocks a second acquisition.
func TestAcquireMarker_RefusesSecondRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	release, err := acquireMarker(context.Background(), dir)
	require.NoError(t, err)

	_, err = acquireMarker(context.Background(), dir)
	require.ErrorIs(t, err, errAlreadyRunning)

	release()

	_, err = os.Stat(filepath.Join(dir, markerFilename))
	require.ErrorIs(t, err, os.ErrNotExist)

	release2, err := acquireMarker(context.Background(), dir)
	require.NoError(t, err)

	release2()
}

// TestAcquireMarker_ReclaimsStaleMarker verifies a marker older than its
// lifetime is recovered when no other updater process exists.
func TestAcquireMarker_ReclaimsStaleMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, markerFilename)

	require.NoError(t, os.WriteFile(path, nil, 0o644))

	old := time.Now().Add(-2 * markerLifetime)
	require.NoError(t, os.Chtimes(path, old, old))

	release, err := acquireMarker(context.Background(), dir)
	require.NoError(t, err)

	release()
}
