package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// AlertsHandler handles the provider-alert feed endpoints
type AlertsHandler struct {
	alertService *services.AlertService
}

// NewAlertsHandler creates a new alerts handler
func NewAlertsHandler(alertService *services.AlertService) *AlertsHandler {
	return &AlertsHandler{
		alertService: alertService,
	}
}

// RateUpdates handles GET /api/rate-updates
func (h *AlertsHandler) RateUpdates(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alertService.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":  alerts,
		"count": len(alerts),
	})
}

// UpdateProviderAlert handles PATCH /api/update-provider-alert
func (h *AlertsHandler) UpdateProviderAlert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Link string `json:"link"`
		entities.ServiceLineUpdate
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := req.ServiceLineUpdate
	if update.Key == "" {
		update.Key = req.Link
	}

	affected, err := h.alertService.UpdateServiceLines(r.Context(), &update)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"updated": affected})
}
