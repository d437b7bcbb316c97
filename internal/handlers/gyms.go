package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/alpengrip/cruxsync/internal/repositories"
)

func (h *Handler) ListGyms(w http.ResponseWriter, r *http.Request) {
	gyms, err := h.gyms.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, gyms)
}

func (h *Handler) GetGym(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "gymID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid gym id")
		return
	}

	gym, err := h.gyms.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "gym not found")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	// Reading a gym counts as access for the eviction policy.
	if err := h.gyms.TouchLastAccessed(r.Context(), id, time.Now()); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, gym)
}

// PinGym fetches the gym fresh from the backend, stores it with the pin
// set, and exempts it from eviction.
func (h *Handler) PinGym(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "gymID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid gym id")
		return
	}

	remoteGym, err := h.sync.FetchGym(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	}

	gym, err := h.sync.SaveGymFromBackend(r.Context(), *remoteGym, true)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, gym)
}

func (h *Handler) UnpinGym(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "gymID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid gym id")
		return
	}

	err = h.gyms.SetPinned(r.Context(), id, false)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "gym not found")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusNoContent, nil)
}

func (h *Handler) ListSpraywalls(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "gymID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid gym id")
		return
	}

	walls, err := h.walls.ListByGym(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, walls)
}

func (h *Handler) ListBoulders(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "spraywallID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid spraywall id")
		return
	}

	boulders, err := h.boulders.ListBySpraywall(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, boulders)
}
