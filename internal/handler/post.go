package handler

import (
	"encoding/json"
	"net/http"

	"socialmedia/internal/httputil"
	"socialmedia/internal/model"
	"socialmedia/internal/service"
)

type PostHandler struct {
	platformService *service.PlatformService
}

func NewPostHandler(platformService *service.PlatformService) *PostHandler {
	return &PostHandler{platformService: platformService}
}

// Create handles POST /posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	id, err := h.platformService.CreatePost(r.Context(), req.Handle, req.Message)
	if err != nil {
		writePlatformError(w, "Create post", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.CreatedResponse{ID: id})
}

// Show handles GET /posts/{id}
func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	text, err := h.platformService.ShowIndividualPost(r.Context(), id)
	if err != nil {
		writePlatformError(w, "Show post", err)
		return
	}

	httputil.WriteText(w, http.StatusOK, text)
}

// Tree handles GET /posts/{id}/tree
func (h *PostHandler) Tree(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	text, err := h.platformService.ShowPostChildrenDetails(r.Context(), id)
	if err != nil {
		writePlatformError(w, "Post tree", err)
		return
	}

	httputil.WriteText(w, http.StatusOK, text)
}

// Comment handles POST /posts/{id}/comments
func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	commentID, err := h.platformService.CommentPost(r.Context(), req.Handle, id, req.Message)
	if err != nil {
		writePlatformError(w, "Comment post", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.CreatedResponse{ID: commentID})
}

// Endorse handles POST /posts/{id}/endorsements
func (h *PostHandler) Endorse(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req model.EndorseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	endorsementID, err := h.platformService.EndorsePost(r.Context(), req.Handle, id)
	if err != nil {
		writePlatformError(w, "Endorse post", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.CreatedResponse{ID: endorsementID})
}

// Delete handles DELETE /posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	if err := h.platformService.DeletePost(r.Context(), id); err != nil {
		writePlatformError(w, "Delete post", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
