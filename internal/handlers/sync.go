package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/alpengrip/cruxsync/internal/services"
)

func (h *Handler) SyncGyms(w http.ResponseWriter, r *http.Request) {
	result, err := h.sync.SyncGyms(r.Context())
	h.writeSyncResult(w, r, result, err)
}

func (h *Handler) SyncSpraywalls(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "gymID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid gym id")
		return
	}
	result, err := h.sync.SyncSpraywalls(r.Context(), id)
	h.writeSyncResult(w, r, result, err)
}

func (h *Handler) SyncBoulders(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "spraywallID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid spraywall id")
		return
	}
	result, err := h.sync.SyncBoulders(r.Context(), id)
	h.writeSyncResult(w, r, result, err)
}

func (h *Handler) writeSyncResult(w http.ResponseWriter, r *http.Request, result services.ReconcileResult, err error) {
	if errors.Is(err, services.ErrSyncInProgress) {
		writeError(w, r, http.StatusConflict, "sync already in progress")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// EvictStale runs the cache eviction policy on demand with the configured
// retention window.
func (h *Handler) EvictStale(w http.ResponseWriter, r *http.Request) {
	evicted, err := h.eviction.EvictStale(r.Context(), h.retention)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"evicted": evicted})
}
