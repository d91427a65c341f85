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
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

type stubAlertRepo struct {
	deletedLink string
	updates     []*entities.ServiceLineUpdate
}

func (s *stubAlertRepo) List(_ context.Context) ([]*entities.Alert, error) {
	return nil, nil
}

func (s *stubAlertRepo) UpdateServiceLines(_ context.Context, update *entities.ServiceLineUpdate) (int64, error) {
	s.updates = append(s.updates, update)
	return 1, nil
}

func (s *stubAlertRepo) Delete(_ context.Context, link string) (int64, error) {
	if link == "missing" {
		return 0, apperrors.NewNotFoundError("alert not found")
	}
	s.deletedLink = link
	return 1, nil
}

type stubBillRepo struct {
	updates []*entities.ServiceLineUpdate
}

func (s *stubBillRepo) List(_ context.Context) ([]*entities.Bill, error) {
	return nil, nil
}

func (s *stubBillRepo) UpdateServiceLines(_ context.Context, update *entities.ServiceLineUpdate) (int64, error) {
	s.updates = append(s.updates, update)
	return 1, nil
}

func (s *stubBillRepo) Delete(_ context.Context, _ string) (int64, error) {
	return 1, nil
}

func newMutationsHandler(rateRepo *stubRateRepo, alertRepo *stubAlertRepo, billRepo *stubBillRepo) *handlers.MutationsHandler {
	return handlers.NewMutationsHandler(
		services.NewRateService(rateRepo, &stubCommentRepo{}),
		services.NewAlertService(alertRepo),
		services.NewBillService(billRepo),
	)
}

func TestMutationsHandler_UpdateFormatsRate(t *testing.T) {
	handler := newMutationsHandler(&stubRateRepo{}, &stubAlertRepo{}, &stubBillRepo{})

	body := `{"id":"42","updates":{"rate":"55.00"}}`
	req := httptest.NewRequest("PATCH", "/api/update-master-data", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.UpdateMasterData(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "$55.00", response.Data["rate"])
}

func TestMutationsHandler_UpdateRejectsEmptyBody(t *testing.T) {
	handler := newMutationsHandler(&stubRateRepo{}, &stubAlertRepo{}, &stubBillRepo{})

	req := httptest.NewRequest("PATCH", "/api/update-master-data", strings.NewReader(`{"id":"42"}`))
	w := httptest.NewRecorder()
	handler.UpdateMasterData(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMutationsHandler_DeleteDispatchesByTable(t *testing.T) {
	alertRepo := &stubAlertRepo{}
	handler := newMutationsHandler(&stubRateRepo{}, alertRepo, &stubBillRepo{})

	body := `{"table":"provider_alerts","link":"https://example.com/notice"}`
	req := httptest.NewRequest("DELETE", "/api/delete-master-data", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.DeleteMasterData(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.com/notice", alertRepo.deletedLink)
}

func TestMutationsHandler_DeleteUnknownTable(t *testing.T) {
	handler := newMutationsHandler(&stubRateRepo{}, &stubAlertRepo{}, &stubBillRepo{})

	body := `{"table":"users","id":"1"}`
	req := httptest.NewRequest("DELETE", "/api/delete-master-data", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.DeleteMasterData(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMutationsHandler_DeleteMissingAlertIs404(t *testing.T) {
	handler := newMutationsHandler(&stubRateRepo{}, &stubAlertRepo{}, &stubBillRepo{})

	body := `{"table":"provider_alerts","link":"missing"}`
	req := httptest.NewRequest("DELETE", "/api/delete-master-data", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.DeleteMasterData(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutationsHandler_ServiceLinesUpdateBill(t *testing.T) {
	billRepo := &stubBillRepo{}
	handler := newMutationsHandler(&stubRateRepo{}, &stubAlertRepo{}, billRepo)

	body := `{"table":"bills","url":"https://legis.example/hb-100","service_lines_impacted":"DENTAL"}`
	req := httptest.NewRequest("POST", "/api/update-service-lines", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.UpdateServiceLines(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, billRepo.updates, 1)
	assert.Equal(t, "https://legis.example/hb-100", billRepo.updates[0].Key)
	require.NotNil(t, billRepo.updates[0].Line1)
	assert.Equal(t, "DENTAL", *billRepo.updates[0].Line1)
}
