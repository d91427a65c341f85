package providers

import (
	"context"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
)

// BillingProvider resolves a user's subscription state with the hosted
// billing service. Implementations return a Subscription with a sentinel
// status (no_customer / no_subscription) rather than an error when the user
// simply has no billing record.
type BillingProvider interface {
	SubscriptionForEmail(ctx context.Context, email string) (*entities.Subscription, error)
}

// EmailProvider sends transactional email through the hosted email service.
type EmailProvider interface {
	Send(ctx context.Context, to, subject, body string) error
}
