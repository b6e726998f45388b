package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/series-points/metrics"
	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/services"
)

type UserHandler struct {
	userService services.UserService
	metrics     *metrics.Manager
}

func NewUserHandler(us services.UserService, m *metrics.Manager) *UserHandler {
	return &UserHandler{userService: us, metrics: m}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var input services.CreateUserInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), caller, input)
	if err != nil {
		if errors.Is(err, services.ErrQuotaExceeded) {
			h.metrics.RecordQuotaRejection()
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.GetUser(r.Context(), caller, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListUsers accepts an optional ?role= filter.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var role *models.UserRole
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed := models.UserRole(raw)
		role = &parsed
	}

	users, err := h.userService.ListUsers(r.Context(), caller, role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"users": users}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
