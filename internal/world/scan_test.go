package world

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftworld/internal/chunk"
	"driftworld/internal/config"
	"driftworld/internal/lore"
)

func TestScanRequiresNearbyPOI(t *testing.T) {
	w := newTestWorld(t, nil)

	// Force a POI-free snapshot regardless of terrain luck.
	w.poiNear = nil
	w.publish()

	assert.ErrorIs(t, w.Scan(), ErrNoPOINearby)
}

func TestScanProducesLore(t *testing.T) {
	want := lore.Lore{Title: "The First Architects", Content: "They built in silence."}
	logger := log.New(io.Discard)
	scanner := NewScanner(&stubLore{out: want}, logger)

	cfg := config.Defaults()
	cfg.RenderDistance = 1
	w := New(cfg, scanner, logger)

	// Fabricate a nearby monolith; the scan path only reads the snapshot.
	w.poiNear = &chunk.PointOfInterest{X: 1, Y: 5, Z: 1}
	w.obs.Pos = mgl64.Vec3{0, 6.6, 0}
	w.publish()

	require.NoError(t, w.Scan())

	require.Eventually(t, func() bool {
		got, _, ok := w.ScanResult()
		return ok && got == want
	}, time.Second, 5*time.Millisecond)
}

func TestScannerSingleFlight(t *testing.T) {
	release := make(chan struct{})
	src := &stubLore{block: release, out: lore.Placeholder}
	s := NewScanner(src, log.New(io.Discard))

	require.NoError(t, s.Trigger("Plains", "Day", "monolith"))
	assert.ErrorIs(t, s.Trigger("Plains", "Day", "monolith"), ErrScanInProgress)

	_, pending, ok := s.Result()
	assert.True(t, pending)
	assert.False(t, ok)

	close(release)
	require.Eventually(t, func() bool {
		_, pending, ok := s.Result()
		return ok && !pending
	}, time.Second, 5*time.Millisecond)
}

func TestScannerResultReplaced(t *testing.T) {
	logger := log.New(io.Discard)
	first := &stubLore{out: lore.Lore{Title: "A", Content: "a"}}
	s := NewScanner(first, logger)

	require.NoError(t, s.Trigger("Desert", "Dusk", "monolith"))
	require.Eventually(t, func() bool {
		got, _, ok := s.Result()
		return ok && got.Title == "A"
	}, time.Second, 5*time.Millisecond)

	first.out = lore.Lore{Title: "B", Content: "b"}
	require.NoError(t, s.Trigger("Desert", "Night", "monolith"))
	require.Eventually(t, func() bool {
		got, _, ok := s.Result()
		return ok && got.Title == "B"
	}, time.Second, 5*time.Millisecond)
}
