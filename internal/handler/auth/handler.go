package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrowave/api/internal/model/user"
	"github.com/afrowave/api/internal/repository"
	authService "github.com/afrowave/api/internal/service/auth"
	"github.com/afrowave/api/pkg/utils"
)

// Handler serves signup and login.
type Handler struct {
	authSvc *authService.Service
}

// New creates the auth handler.
func New(authSvc *authService.Service) *Handler {
	return &Handler{authSvc: authSvc}
}

// RegisterRoutes registers the public auth routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.handleSignUp)
	r.Post("/login", h.handleLogIn)
}

type signUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	CreatorType string `json:"creatorType"`
	Bio         string `json:"bio"`
	Age         int    `json:"age"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var payload signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, _, err := h.authSvc.SignUp(r.Context(), authService.SignUpInput{
		Email:       payload.Email,
		Password:    payload.Password,
		Name:        payload.Name,
		CreatorType: payload.CreatorType,
		Bio:         payload.Bio,
		Age:         payload.Age,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			utils.RespondError(w, http.StatusBadRequest, "email already registered")
			return
		}
		if isValidationError(err) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[auth] signup failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "signup failed", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

type logInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogIn(w http.ResponseWriter, r *http.Request) {
	var payload logInRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, _, err := h.authSvc.LogIn(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Printf("[auth] login failed: %v", err)
		utils.RespondErrorDetails(w, http.StatusInternalServerError, "login failed", err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, authService.ErrEmailRequired),
		errors.Is(err, authService.ErrPasswordTooShort),
		errors.Is(err, authService.ErrNameRequired),
		errors.Is(err, user.ErrInvalidCreatorType),
		errors.Is(err, user.ErrBioTooLong),
		errors.Is(err, user.ErrAgeOutOfRange):
		return true
	}
	return false
}
