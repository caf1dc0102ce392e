package handler

import (
	"errors"
	"log"
	"net/http"

	"socialmedia/internal/httputil"
	"socialmedia/internal/service"
	"socialmedia/internal/snapshot"
)

type AdminHandler struct {
	platformService *service.PlatformService
}

func NewAdminHandler(platformService *service.PlatformService) *AdminHandler {
	return &AdminHandler{platformService: platformService}
}

// Save handles POST /admin/save
func (h *AdminHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.platformService.Save(r.Context()); err != nil {
		writeSnapshotError(w, "Save", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Load handles POST /admin/load
func (h *AdminHandler) Load(w http.ResponseWriter, r *http.Request) {
	if err := h.platformService.Load(r.Context()); err != nil {
		writeSnapshotError(w, "Load", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.platformService.Stats(r.Context()))
}

// Erase handles POST /admin/erase. The sentinel account and post go too.
func (h *AdminHandler) Erase(w http.ResponseWriter, r *http.Request) {
	h.platformService.Erase(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /admin/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.platformService.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func writeSnapshotError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrStoreNotConfigured):
		httputil.WriteServiceUnavailable(w, "Snapshot store not configured")
	case errors.Is(err, snapshot.ErrNotFound):
		httputil.WriteNotFound(w, "No snapshot saved")
	case errors.Is(err, snapshot.ErrCorrupt):
		httputil.WriteUnprocessable(w, httputil.ErrCodeSnapshotCorrupt, "Stored snapshot is corrupt")
	default:
		log.Printf("[ERROR] %s snapshot handler: err=%v", op, err)
		httputil.WriteInternalError(w, "Snapshot operation failed")
	}
}
