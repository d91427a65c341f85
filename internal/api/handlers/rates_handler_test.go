package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewatch/medicaid-rates-backend/internal/api/handlers"
	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/repositories"
)

type stubRateRepo struct {
	records  []*entities.RateRecord
	distinct map[string][]string
}

func (s *stubRateRepo) List(_ context.Context, _ repositories.RateFilter) ([]*entities.RateRecord, error) {
	return s.records, nil
}

func (s *stubRateRepo) DistinctValues(_ context.Context, column string, _ repositories.RateFilter) ([]string, error) {
	return s.distinct[column], nil
}

func (s *stubRateRepo) Update(_ context.Context, id string, fields map[string]interface{}) (*entities.RateRecord, error) {
	record := &entities.RateRecord{ID: id}
	if rate, ok := fields["rate"].(string); ok {
		record.Rate = rate
	}
	return record, nil
}

func (s *stubRateRepo) Delete(_ context.Context, _ string) error {
	return nil
}

type stubCommentRepo struct{}

func (s *stubCommentRepo) ListByStateCategory(_ context.Context, state, category string) ([]*entities.RateComment, error) {
	return []*entities.RateComment{{State: state, ServiceCategory: category, Comment: "note"}}, nil
}

func newRatesHandler(repo *stubRateRepo) *handlers.RatesHandler {
	return handlers.NewRatesHandler(services.NewRateService(repo, &stubCommentRepo{}))
}

func TestRatesHandler_FiltersModeReturnsOptions(t *testing.T) {
	repo := &stubRateRepo{
		records: []*entities.RateRecord{{StateName: "OHIO", ServiceCategory: "DENTAL"}},
		distinct: map[string][]string{
			"service_category": {"DENTAL", "BEHAVIORAL HEALTH"},
			"state_name":       {"Ohio"},
		},
	}
	handler := newRatesHandler(repo)

	req := httptest.NewRequest("GET", "/api/state-payment-comparison?mode=filters&serviceCategory=DENTAL", nil)
	w := httptest.NewRecorder()
	handler.StatePaymentComparison(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data          []map[string]interface{} `json:"data"`
		FilterOptions map[string][]string      `json:"filterOptions"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, []string{"BEHAVIORAL HEALTH", "DENTAL"}, response.FilterOptions["service_category"])
	assert.Equal(t, []string{"OHIO"}, response.FilterOptions["state_name"])
}

func TestRatesHandler_AllStatesAddsAverages(t *testing.T) {
	repo := &stubRateRepo{
		records: []*entities.RateRecord{
			{StateName: "OHIO", ServiceCode: "A", Rate: "$40.00", DurationUnit: "PER HOUR"},
			{StateName: "OHIO", ServiceCode: "B", Rate: "$20.00", DurationUnit: "PER HOUR"},
		},
	}
	handler := newRatesHandler(repo)

	body := `{"state":"All States","serviceCategory":"DENTAL","hourly":true}`
	req := httptest.NewRequest("POST", "/api/state-payment-comparison", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.StatePaymentComparison(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		StateAverages []struct {
			StateName     string  `json:"state_name"`
			AverageRate   float64 `json:"average_rate"`
			FormattedRate string  `json:"formatted_rate"`
		} `json:"stateAverages"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.StateAverages, 1)
	assert.Equal(t, "OHIO", response.StateAverages[0].StateName)
	assert.Equal(t, 30.0, response.StateAverages[0].AverageRate)
	assert.Equal(t, "$30.00", response.StateAverages[0].FormattedRate)
}

func TestRatesHandler_SortOrdersRows(t *testing.T) {
	repo := &stubRateRepo{
		records: []*entities.RateRecord{
			{StateName: "OHIO", ServiceCode: "B", Rate: "$20.00"},
			{StateName: "ALASKA", ServiceCode: "A", Rate: "$40.00"},
			{StateName: "OHIO", ServiceCode: "A", Rate: "$9.00"},
		},
	}
	handler := newRatesHandler(repo)

	body := `{"sort":[{"key":"state_name"},{"key":"rate","descending":true}]}`
	req := httptest.NewRequest("POST", "/api/state-payment-comparison", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.StatePaymentComparison(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []struct {
			StateName string `json:"state_name"`
			Rate      string `json:"rate"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Data, 3)
	assert.Equal(t, "ALASKA", response.Data[0].StateName)
	// Within OHIO, $20.00 beats $9.00 numerically, not lexically
	assert.Equal(t, "$20.00", response.Data[1].Rate)
	assert.Equal(t, "$9.00", response.Data[2].Rate)
}

func TestRatesHandler_CommentsRequireBothParams(t *testing.T) {
	handler := newRatesHandler(&stubRateRepo{})

	req := httptest.NewRequest("GET", "/api/comments_table?state=OHIO", nil)
	w := httptest.NewRecorder()
	handler.Comments(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRatesHandler_CommentsReturnsAnnotations(t *testing.T) {
	handler := newRatesHandler(&stubRateRepo{})

	req := httptest.NewRequest("GET", "/api/comments_table?state=ohio&serviceCategory=DENTAL", nil)
	w := httptest.NewRecorder()
	handler.Comments(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "OHIO", response.Data[0]["state"])
}
