package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	leaderboardservice "github.com/piclink-games/piclink-backend/app/modules/leaderboard/application"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

const defaultLeaderboardLimit = 25

// LeaderboardHandler exposes the ranked projection over HTTP.
type LeaderboardHandler struct {
	service *leaderboardservice.LeaderboardService
}

func NewLeaderboardHandler(service *leaderboardservice.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// GetLeaderboard retrieves the top ranked players.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultLeaderboardLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.service.GetTopEntries(r.Context(), limit)
	if err != nil {
		writeRetryLater(w)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetUserEntry retrieves a single player's rank.
func (h *LeaderboardHandler) GetUserEntry(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	entry, err := h.service.GetUserEntry(r.Context(), userID)
	if err != nil {
		if errors.Is(err, leaderboardservice.ErrUserNotRanked) {
			writeError(w, http.StatusNotFound, "user is not ranked")
			return
		}
		writeRetryLater(w)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Routes sets up the leaderboard routes.
func (h *LeaderboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetLeaderboard)
	r.Get("/users/{userID}", h.GetUserEntry)
	return r
}
