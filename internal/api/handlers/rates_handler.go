package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ratewatch/medicaid-rates-backend/internal/application/filtering"
	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
	"github.com/ratewatch/medicaid-rates-backend/internal/application/sorting"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
)

// RatesHandler handles the state payment comparison endpoints
type RatesHandler struct {
	rateService *services.RateService
}

// NewRatesHandler creates a new rates handler
func NewRatesHandler(rateService *services.RateService) *RatesHandler {
	return &RatesHandler{
		rateService: rateService,
	}
}

// comparisonRequest is the filter payload for the comparison endpoint. GET
// requests carry the same fields as query parameters.
type comparisonRequest struct {
	Mode               string `json:"mode"`
	ServiceCategory    string `json:"serviceCategory"`
	State              string `json:"state"`
	ServiceCode        string `json:"serviceCode"`
	ServiceDescription string `json:"serviceDescription"`
	Program            string `json:"program"`
	LocationRegion     string `json:"locationRegion"`
	Modifier           string `json:"modifier"`
	ProviderType       string `json:"providerType"`
	Latest             bool   `json:"latest"`
	Hourly             bool   `json:"hourly"`

	// Sort carries the active multi-key sort; index 0 is the primary key.
	Sort []sorting.Criterion `json:"sort"`
}

// StatePaymentComparison handles GET and POST /api/state-payment-comparison.
// With mode=filters it returns the rows plus the valid dropdown options for
// the current selections. With the all-states sentinel selected it adds the
// per-state averages the comparison chart renders.
func (h *RatesHandler) StatePaymentComparison(w http.ResponseWriter, r *http.Request) {
	req, err := parseComparisonRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filter := req.filter()
	records, listErr := h.rateService.ListRates(r.Context(), filter, req.Latest)
	if listErr != nil {
		respondWithAppError(w, listErr)
		return
	}
	records = h.rateService.SortRecords(records, req.Sort)

	response := map[string]interface{}{
		"data": records,
	}

	if req.Mode == "filters" {
		options, err := h.rateService.FilterOptions(r.Context(), filter)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		response["filterOptions"] = options
	}

	if filtering.Normalize(filtering.StepState, req.State) == filtering.AllStates {
		averages, err := h.rateService.StateAverages(r.Context(), filter, req.Hourly)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		response["stateAverages"] = averages
	}

	respondWithJSON(w, http.StatusOK, response)
}

// Comments handles GET /api/comments_table
func (h *RatesHandler) Comments(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	serviceCategory := r.URL.Query().Get("serviceCategory")

	comments, err := h.rateService.Comments(r.Context(), state, serviceCategory)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data": comments,
	})
}

func parseComparisonRequest(r *http.Request) (*comparisonRequest, error) {
	req := &comparisonRequest{}

	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, err
		}
		return req, nil
	}

	q := r.URL.Query()
	req.Mode = q.Get("mode")
	req.ServiceCategory = q.Get("serviceCategory")
	req.State = q.Get("state")
	req.ServiceCode = q.Get("serviceCode")
	req.ServiceDescription = q.Get("serviceDescription")
	req.Program = q.Get("program")
	req.LocationRegion = q.Get("locationRegion")
	req.Modifier = q.Get("modifier")
	req.ProviderType = q.Get("providerType")
	req.Latest = q.Get("latest") == "true"
	req.Hourly = q.Get("hourly") == "true"
	if key := q.Get("sortBy"); key != "" {
		req.Sort = []sorting.Criterion{{Key: key, Descending: q.Get("sortOrder") == "desc"}}
	}
	return req, nil
}

// filter normalizes the request's selections the same way the cascade does,
// so "ohio" and "All States" behave identically from either entry point.
func (req *comparisonRequest) filter() repositories.RateFilter {
	return repositories.RateFilter{
		ServiceCategory:    filtering.Normalize(filtering.StepServiceCategory, req.ServiceCategory),
		State:              filtering.Normalize(filtering.StepState, req.State),
		ServiceCode:        filtering.Normalize(filtering.StepServiceCode, req.ServiceCode),
		ServiceDescription: filtering.Normalize(filtering.StepServiceDescription, req.ServiceDescription),
		Program:            filtering.Normalize(filtering.StepProgram, req.Program),
		LocationRegion:     filtering.Normalize(filtering.StepLocationRegion, req.LocationRegion),
		Modifier:           filtering.Normalize(filtering.StepModifier, req.Modifier),
		ProviderType:       filtering.Normalize(filtering.StepProviderType, req.ProviderType),
	}
}
