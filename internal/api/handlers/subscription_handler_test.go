package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewatch/medicaid-rates-backend/internal/adapters/providers/billing"
	"github.com/ratewatch/medicaid-rates-backend/internal/api/handlers"
	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
)

func newSubscriptionHandler() *handlers.SubscriptionHandler {
	return handlers.NewSubscriptionHandler(
		services.NewSubscriptionService(billing.NewMockBillingProvider()),
	)
}

func postSubscription(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/stripe/subscription", strings.NewReader(body))
	w := httptest.NewRecorder()
	newSubscriptionHandler().Status(w, req)
	return w
}

func TestSubscriptionHandler_ActiveSubscriber(t *testing.T) {
	w := postSubscription(t, `{"email":"subscriber@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "active", response["status"])
	assert.Equal(t, "Professional", response["plan"])
}

func TestSubscriptionHandler_NoCustomerIsSentinelNotError(t *testing.T) {
	w := postSubscription(t, `{"email":"nocustomer@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "no_customer", response["status"])
}

func TestSubscriptionHandler_RejectsMissingEmail(t *testing.T) {
	w := postSubscription(t, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
