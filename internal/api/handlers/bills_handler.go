package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// BillsHandler handles the legislative feed endpoints
type BillsHandler struct {
	billService *services.BillService
}

// NewBillsHandler creates a new bills handler
func NewBillsHandler(billService *services.BillService) *BillsHandler {
	return &BillsHandler{
		billService: billService,
	}
}

// LegislativeUpdates handles GET /api/legislative-updates
func (h *BillsHandler) LegislativeUpdates(w http.ResponseWriter, r *http.Request) {
	bills, err := h.billService.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":  bills,
		"count": len(bills),
	})
}

// UpdateBill handles PATCH /api/update-bill
func (h *BillsHandler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
		entities.ServiceLineUpdate
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := req.ServiceLineUpdate
	if update.Key == "" {
		update.Key = req.URL
	}

	affected, err := h.billService.UpdateServiceLines(r.Context(), &update)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"updated": affected})
}
