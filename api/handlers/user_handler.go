package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	userservice "github.com/piclink-games/piclink-backend/app/modules/user/application"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// UserHandler exposes the profile read path over HTTP.
type UserHandler struct {
	service *userservice.UserService
}

func NewUserHandler(service *userservice.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile retrieves a user's profile, served cache-aside.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userservice.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeRetryLater(w)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Routes sets up the user routes.
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{userID}", h.GetProfile)
	return r
}
