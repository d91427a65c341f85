package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
)

// PreferencesHandler handles email alert preference endpoints
type PreferencesHandler struct {
	preferenceService *services.PreferenceService
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(preferenceService *services.PreferenceService) *PreferencesHandler {
	return &PreferencesHandler{
		preferenceService: preferenceService,
	}
}

// Get handles GET /api/user-preferences. A first read creates an empty
// preference row for the email.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	preference, err := h.preferenceService.Get(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, preference)
}

// Save handles POST /api/user-preferences
func (h *PreferencesHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string   `json:"email"`
		States     []string `json:"states"`
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	preference, err := h.preferenceService.Save(r.Context(), req.Email, req.States, req.Categories)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, preference)
}
