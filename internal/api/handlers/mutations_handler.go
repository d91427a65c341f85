package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// Tables addressable by the shared mutation endpoints.
const (
	tableMasterData     = "master_data"
	tableProviderAlerts = "provider_alerts"
	tableBills          = "bills"
)

// MutationsHandler handles the inline-edit endpoints shared across the
// dashboard tables. Rate rows are addressed by surrogate id; alerts and
// bills by their natural key (link / url).
type MutationsHandler struct {
	rateService  *services.RateService
	alertService *services.AlertService
	billService  *services.BillService
}

// NewMutationsHandler creates a new mutations handler
func NewMutationsHandler(rateService *services.RateService, alertService *services.AlertService, billService *services.BillService) *MutationsHandler {
	return &MutationsHandler{
		rateService:  rateService,
		alertService: alertService,
		billService:  billService,
	}
}

// UpdateMasterData handles PATCH /api/update-master-data. The response
// carries the merged row; there is no conflict detection, last write wins.
func (h *MutationsHandler) UpdateMasterData(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      string                 `json:"id"`
		Updates map[string]interface{} `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.rateService.UpdateRecord(r.Context(), req.ID, req.Updates)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data": record,
	})
}

// DeleteMasterData handles DELETE /api/delete-master-data. Omitting table
// (or naming master_data) deletes a rate row by id; provider_alerts and
// bills delete by natural key. The client confirms before calling; the
// server just executes.
func (h *MutationsHandler) DeleteMasterData(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Table string `json:"table"`
		ID    string `json:"id"`
		Link  string `json:"link"`
		URL   string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Table {
	case "", tableMasterData:
		if err := h.rateService.DeleteRecord(r.Context(), req.ID); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"deleted": 1})
	case tableProviderAlerts:
		affected, err := h.alertService.Delete(r.Context(), req.Link)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"deleted": affected})
	case tableBills:
		affected, err := h.billService.Delete(r.Context(), req.URL)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"deleted": affected})
	default:
		respondWithError(w, http.StatusBadRequest, "unknown table: "+req.Table)
	}
}

// UpdateServiceLines handles POST /api/update-service-lines, dispatching a
// reclassification to alerts or bills by table name.
func (h *MutationsHandler) UpdateServiceLines(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Table string `json:"table"`
		Link  string `json:"link"`
		URL   string `json:"url"`
		entities.ServiceLineUpdate
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var affected int64
	var err error
	switch req.Table {
	case tableProviderAlerts:
		update := req.ServiceLineUpdate
		if update.Key == "" {
			update.Key = req.Link
		}
		affected, err = h.alertService.UpdateServiceLines(r.Context(), &update)
	case tableBills:
		update := req.ServiceLineUpdate
		if update.Key == "" {
			update.Key = req.URL
		}
		affected, err = h.billService.UpdateServiceLines(r.Context(), &update)
	default:
		respondWithError(w, http.StatusBadRequest, "unknown table: "+req.Table)
		return
	}

	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"updated": affected})
}
