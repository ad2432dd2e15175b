package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"driftworld/internal/world"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type Handler struct {
	world *world.World
	log   *log.Logger
}

func NewHandler(w *world.World, logger *log.Logger) *Handler {
	return &Handler{world: w, log: logger}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "driftworld",
	})
}

// GetStats returns the latest published simulation snapshot.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.world.Snapshot())
}

// GetPOI reports the point of interest near the observer, if any.
func (h *Handler) GetPOI(w http.ResponseWriter, r *http.Request) {
	snap := h.world.Snapshot()
	if snap.POI == nil {
		h.renderError(w, r, http.StatusNotFound, "no point of interest nearby", nil)
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, snap.POI)
}

// StartScan triggers lore generation for the nearby point of interest.
func (h *Handler) StartScan(w http.ResponseWriter, r *http.Request) {
	err := h.world.Scan()
	switch {
	case errors.Is(err, world.ErrNoPOINearby):
		h.renderError(w, r, http.StatusNotFound, "no point of interest nearby", nil)
		return
	case errors.Is(err, world.ErrScanInProgress):
		h.renderError(w, r, http.StatusConflict, "scan already in progress", nil)
		return
	case err != nil:
		h.renderError(w, r, http.StatusInternalServerError, "failed to start scan", err)
		return
	}
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]string{"status": "scanning"})
}

// GetScan returns the latest finished scan result.
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	result, pending, ok := h.world.ScanResult()
	if !ok {
		if pending {
			render.Status(r, http.StatusAccepted)
			render.JSON(w, r, map[string]string{"status": "scanning"})
			return
		}
		h.renderError(w, r, http.StatusNotFound, "no scan result available", nil)
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

// GetChunk generates and returns the chunk at the given coordinates. Chunks
// are pure functions of the world seed, so this never touches the streaming
// window.
func (h *Handler) GetChunk(w http.ResponseWriter, r *http.Request) {
	cx, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk x coordinate", err)
		return
	}
	cz, err := strconv.Atoi(chi.URLParam(r, "z"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk z coordinate", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.world.GenerateChunk(cx, cz))
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		h.log.Error("API error", "error", err, "message", message, "status", status)
		if status >= 500 {
			message = "Internal server error"
		}
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message, Code: status})
}
