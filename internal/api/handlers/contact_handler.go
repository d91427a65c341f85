package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// ContactHandler handles contact-form submissions
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// Send handles POST /api/send-email
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var message entities.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.contactService.Send(r.Context(), &message); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "sent",
	})
}
