package memory

import (
	"testing"

	"image-processor/internal/logger"
	"image-processor/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestManager_TracksSafeMatLifecycle(t *testing.T) {
	mgr := NewManager(logger.NewNop())

	a, err := safe.NewMatWithTracker(10, 10, gocv.MatTypeCV8UC4, mgr, "a")
	require.NoError(t, err)
	b, err := safe.NewMatWithTracker(5, 5, gocv.MatTypeCV8UC4, mgr, "b")
	require.NoError(t, err)

	stats := mgr.GetStats()
	assert.Equal(t, int64(2), stats.ActiveMats)
	assert.Equal(t, int64(400+100), stats.InUse())
	assert.Equal(t, int64(500), stats.PeakBytes)

	a.Close()
	stats = mgr.GetStats()
	assert.Equal(t, int64(1), stats.ActiveMats)
	assert.Equal(t, int64(100), stats.InUse())
	assert.Equal(t, int64(500), stats.PeakBytes)
	assert.Equal(t, 1, mgr.Report())

	b.Close()
	assert.Equal(t, 0, mgr.Report())
}

func TestManager_IgnoresUntrackedRelease(t *testing.T) {
	mgr := NewManager(logger.NewNop())
	mgr.TrackDeallocation(42, "ghost")

	stats := mgr.GetStats()
	assert.Zero(t, stats.ActiveMats)
	assert.Zero(t, stats.TotalReleased)
}
