package settings

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrowave/api/internal/middleware"
	"github.com/afrowave/api/internal/model/user"
	"github.com/afrowave/api/internal/repository"
	authService "github.com/afrowave/api/internal/service/auth"
	"github.com/afrowave/api/pkg/utils"
)

// Handler serves account settings for the authenticated identity.
type Handler struct {
	authSvc *authService.Service
}

// New creates the settings handler.
func New(authSvc *authService.Service) *Handler {
	return &Handler{authSvc: authSvc}
}

// RegisterRoutes registers the settings routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.handleGetProfile)
	r.Put("/profile", h.handleUpdateProfile)
	r.Put("/password", h.handleChangePassword)
	r.Delete("/account", h.handleDeleteAccount)
}

type profileResponse struct {
	Success bool         `json:"success"`
	Profile user.Profile `json:"profile"`
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	u, err := h.authSvc.Profile(r.Context(), identity.UserID)
	if err != nil {
		h.respondAccountError(w, "failed to load profile", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, profileResponse{Success: true, Profile: u.Profile()})
}

type updateProfileRequest struct {
	Name        *string `json:"name"`
	CreatorType *string `json:"creatorType"`
	Bio         *string `json:"bio"`
	Age         *int    `json:"age"`
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var payload updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.authSvc.UpdateProfile(r.Context(), identity.UserID, authService.ProfileUpdate{
		Name:        payload.Name,
		CreatorType: payload.CreatorType,
		Bio:         payload.Bio,
		Age:         payload.Age,
	})
	if err != nil {
		if isFieldError(err) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondAccountError(w, "failed to update profile", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, profileResponse{Success: true, Profile: u.Profile()})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.authSvc.ChangePassword(r.Context(), identity.UserID, payload.CurrentPassword, payload.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidCredentials):
			utils.RespondError(w, http.StatusUnauthorized, "current password is incorrect")
		case errors.Is(err, authService.ErrPasswordTooShort):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.respondAccountError(w, "failed to change password", err)
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, successResponse{Success: true, Message: "password updated"})
}

func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	if err := h.authSvc.DeleteAccount(r.Context(), identity.UserID); err != nil {
		h.respondAccountError(w, "failed to delete account", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, successResponse{Success: true, Message: "account deleted"})
}

func (h *Handler) respondAccountError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, repository.ErrUserNotFound) {
		utils.RespondError(w, http.StatusNotFound, "account not found")
		return
	}
	log.Printf("[settings] %s: %v", message, err)
	utils.RespondErrorDetails(w, http.StatusInternalServerError, message, err.Error())
}

func isFieldError(err error) bool {
	switch {
	case errors.Is(err, authService.ErrNameRequired),
		errors.Is(err, user.ErrInvalidCreatorType),
		errors.Is(err, user.ErrBioTooLong),
		errors.Is(err, user.ErrAgeOutOfRange):
		return true
	}
	return false
}
