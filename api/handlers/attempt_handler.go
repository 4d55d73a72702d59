package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	attemptservice "github.com/piclink-games/piclink-backend/app/modules/attempt/application"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// AttemptHandler exposes the attempt tracker over HTTP.
type AttemptHandler struct {
	service attemptservice.Service
}

func NewAttemptHandler(service attemptservice.Service) *AttemptHandler {
	return &AttemptHandler{service: service}
}

type submitGuessRequest struct {
	UserID sharedtypes.UserID `json:"user_id"`
	Guess  string             `json:"guess"`
}

// SubmitGuess records a guess. An already-terminal attempt answers 200 with
// the prior result.
func (h *AttemptHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	challengeID := sharedtypes.ChallengeID(chi.URLParam(r, "challengeID"))

	var input submitGuessRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if input.UserID == "" || input.Guess == "" {
		writeError(w, http.StatusBadRequest, "user_id and guess are required")
		return
	}

	result, err := h.service.SubmitGuess(r.Context(), input.UserID, challengeID, input.Guess)
	if err != nil {
		writeRetryLater(w)
		return
	}
	if result.IsFailure() {
		h.writeAttemptFailure(w, *result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

type revealHintRequest struct {
	UserID     sharedtypes.UserID `json:"user_id"`
	ImageIndex int                `json:"image_index"`
	HintCost   sharedtypes.Points `json:"hint_cost"`
}

// RevealHint reveals an image hint for the caller's attempt.
func (h *AttemptHandler) RevealHint(w http.ResponseWriter, r *http.Request) {
	challengeID := sharedtypes.ChallengeID(chi.URLParam(r, "challengeID"))

	var input revealHintRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if input.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.service.RevealHint(r.Context(), input.UserID, challengeID, input.ImageIndex, input.HintCost)
	if err != nil {
		writeRetryLater(w)
		return
	}
	if result.IsFailure() {
		h.writeAttemptFailure(w, *result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

type giveUpRequest struct {
	UserID sharedtypes.UserID `json:"user_id"`
}

// GiveUp surrenders the caller's attempt.
func (h *AttemptHandler) GiveUp(w http.ResponseWriter, r *http.Request) {
	challengeID := sharedtypes.ChallengeID(chi.URLParam(r, "challengeID"))

	var input giveUpRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if input.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.service.GiveUp(r.Context(), input.UserID, challengeID)
	if err != nil {
		writeRetryLater(w)
		return
	}
	if result.IsFailure() {
		h.writeAttemptFailure(w, *result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

func (h *AttemptHandler) writeAttemptFailure(w http.ResponseWriter, failure error) {
	switch {
	case errors.Is(failure, attemptservice.ErrChallengeNotFound):
		writeError(w, http.StatusNotFound, failure.Error())
	case errors.Is(failure, attemptservice.ErrInvalidHintIndex):
		writeError(w, http.StatusBadRequest, failure.Error())
	case errors.Is(failure, attemptservice.ErrAlreadyComplete),
		errors.Is(failure, attemptservice.ErrHintAlreadyRevealed):
		writeError(w, http.StatusConflict, failure.Error())
	default:
		writeError(w, http.StatusUnprocessableEntity, failure.Error())
	}
}

// Routes sets up the attempt routes.
func (h *AttemptHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/{challengeID}/guess", h.SubmitGuess)
	r.Post("/{challengeID}/hint", h.RevealHint)
	r.Post("/{challengeID}/giveup", h.GiveUp)
	return r
}
