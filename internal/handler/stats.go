package handler

import (
	"net/http"
	"strconv"

	"socialmedia/internal/httputil"
	"socialmedia/internal/service"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type StatsHandler struct {
	platformService *service.PlatformService
}

func NewStatsHandler(platformService *service.PlatformService) *StatsHandler {
	return &StatsHandler{platformService: platformService}
}

// Get handles GET /stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.platformService.Stats(r.Context()))
}

// Leaderboard handles GET /stats/leaderboard?limit=n
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			httputil.WriteBadRequest(w, "Invalid limit")
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}

	entries, err := h.platformService.Leaderboard(r.Context(), limit)
	if err != nil {
		writePlatformError(w, "Leaderboard", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}
