package services

import (
	"context"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/providers"
)

// SubscriptionService handles the dashboard's subscription gate check
type SubscriptionService struct {
	billing providers.BillingProvider
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(billing providers.BillingProvider) *SubscriptionService {
	return &SubscriptionService{billing: billing}
}

// Status resolves the subscription state for an email. Identity is taken on
// trust here: authentication lives upstream, and this lookup only mirrors
// what the billing provider reports for the address.
func (s *SubscriptionService) Status(ctx context.Context, email string) (*entities.Subscription, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.billing.SubscriptionForEmail(ctx, email)
}
