package billing

import (
	"context"
	"strings"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/providers"
)

// MockBillingProvider implements a mock billing provider for local
// development. Emails containing "expired" report an expired subscription
// and unknown-looking emails report no customer; everyone else is active.
type MockBillingProvider struct{}

// NewMockBillingProvider creates a new mock billing provider
func NewMockBillingProvider() providers.BillingProvider {
	return &MockBillingProvider{}
}

// SubscriptionForEmail resolves a canned subscription state by email shape.
func (m *MockBillingProvider) SubscriptionForEmail(ctx context.Context, email string) (*entities.Subscription, error) {
	switch {
	case strings.Contains(email, "nocustomer"):
		return &entities.Subscription{Status: entities.SubscriptionStatusNoCustomer}, nil
	case strings.Contains(email, "expired"):
		return &entities.Subscription{Status: "canceled", CustomerID: "cus_mock"}, nil
	default:
		return &entities.Subscription{
			Status:     "active",
			Plan:       "Professional",
			Amount:     24900,
			Currency:   "usd",
			CustomerID: "cus_mock",
		}, nil
	}
}
