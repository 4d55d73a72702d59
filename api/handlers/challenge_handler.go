package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	challengeservice "github.com/piclink-games/piclink-backend/app/modules/challenge/application"
	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ChallengeHandler exposes challenge creation and the read path over HTTP.
type ChallengeHandler struct {
	service challengeservice.Service
}

func NewChallengeHandler(service challengeservice.Service) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

type createChallengeRequest struct {
	CreatorID sharedtypes.UserID           `json:"creator_id"`
	Images    []challengedb.ChallengeImage `json:"images"`
	Answer    string                       `json:"answer"`
}

// CreateChallenge stores a new challenge.
func (h *ChallengeHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var input createChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if input.CreatorID == "" {
		writeError(w, http.StatusBadRequest, "creator_id is required")
		return
	}

	result, err := h.service.CreateChallenge(r.Context(), input.CreatorID, input.Images, input.Answer)
	if err != nil {
		writeRetryLater(w)
		return
	}
	if result.IsFailure() {
		writeError(w, http.StatusBadRequest, (*result.Failure).Error())
		return
	}
	writeJSON(w, http.StatusCreated, result.Success)
}

// GetChallenge serves a single challenge with its creator profile.
func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID := sharedtypes.ChallengeID(chi.URLParam(r, "challengeID"))

	view, err := h.service.GetChallenge(r.Context(), challengeID)
	if err != nil {
		if errors.Is(err, challengeservice.ErrNotFound) {
			writeError(w, http.StatusNotFound, "challenge not found")
			return
		}
		writeRetryLater(w)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Routes sets up the challenge routes.
func (h *ChallengeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateChallenge)
	r.Get("/{challengeID}", h.GetChallenge)
	return r
}
