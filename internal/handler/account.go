package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"socialmedia/internal/httputil"
	"socialmedia/internal/model"
	"socialmedia/internal/service"
)

type AccountHandler struct {
	platformService *service.PlatformService
}

func NewAccountHandler(platformService *service.PlatformService) *AccountHandler {
	return &AccountHandler{platformService: platformService}
}

// Create handles POST /accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	id, err := h.platformService.CreateAccount(r.Context(), req.Handle, req.Description)
	if err != nil {
		writePlatformError(w, "Create account", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.CreatedResponse{ID: id})
}

// Show handles GET /accounts/{handle}
func (h *AccountHandler) Show(w http.ResponseWriter, r *http.Request) {
	summary, err := h.platformService.ShowAccount(r.Context(), handleParam(r))
	if err != nil {
		writePlatformError(w, "Show account", err)
		return
	}

	httputil.WriteText(w, http.StatusOK, summary)
}

// Update handles PATCH /accounts/{handle}. A rename is applied before the
// description so both can change in one request.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	handle := handleParam(r)

	var req model.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Handle == nil && req.Description == nil {
		httputil.WriteBadRequest(w, "Nothing to update")
		return
	}

	ctx := r.Context()
	if req.Handle != nil && *req.Handle != handle {
		if err := h.platformService.ChangeAccountHandle(ctx, handle, *req.Handle); err != nil {
			writePlatformError(w, "Rename account", err)
			return
		}
		handle = *req.Handle
	}
	if req.Description != nil {
		if err := h.platformService.UpdateAccountDescription(ctx, handle, *req.Description); err != nil {
			writePlatformError(w, "Update account", err)
			return
		}
	}

	summary, err := h.platformService.ShowAccount(ctx, handle)
	if err != nil {
		writePlatformError(w, "Update account", err)
		return
	}
	httputil.WriteText(w, http.StatusOK, summary)
}

// Delete handles DELETE /accounts/{handle}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.platformService.RemoveAccount(r.Context(), handleParam(r)); err != nil {
		writePlatformError(w, "Delete account", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteByID handles DELETE /accounts/id/{id}
func (h *AccountHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid account ID")
		return
	}

	if err := h.platformService.RemoveAccountByID(r.Context(), id); err != nil {
		writePlatformError(w, "Delete account", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
