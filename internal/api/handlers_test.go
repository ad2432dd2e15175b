package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftworld/internal/config"
	"driftworld/internal/lore"
	"driftworld/internal/world"
)

type staticLore struct{ out lore.Lore }

func (s staticLore) Generate(ctx context.Context, biome, timeLabel, landmark string) lore.Lore {
	return s.out
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Defaults()
	cfg.RenderDistance = 1

	logger := log.New(io.Discard)
	scanner := world.NewScanner(staticLore{out: lore.Placeholder}, logger)
	w := world.New(cfg, scanner, logger)
	return SetupRoutes(NewHandler(w, logger))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := get(t, newTestRouter(t), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestGetStats(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap world.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, config.Defaults().Player.StaminaMax, snap.Stamina)
	assert.Equal(t, 9, snap.Loaded)
}

func TestGetChunk(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/chunks/0/0")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Coord   struct{ X, Z int } `json:"coord"`
		Surface struct {
			Res     int       `json:"res"`
			Heights []float64 `json:"heights"`
		} `json:"surface"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 33, body.Surface.Res)
	assert.Len(t, body.Surface.Heights, 33*33)
}

func TestGetChunkBadCoordinates(t *testing.T) {
	router := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/api/v1/chunks/abc/0").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/api/v1/chunks/0/xyz").Code)
}

func TestGetScanBeforeAnyScan(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/scan")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
