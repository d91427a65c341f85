package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/providers"
	stripeclient "github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/clients/stripe"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// StripeAdapter implements BillingProvider on top of the Stripe REST client.
// Results are cached per email so repeated gate checks during a session do
// not hit Stripe on every page load.
type StripeAdapter struct {
	client     *stripeclient.Client
	cache      providers.CacheProvider
	ttlSeconds int
}

// NewStripeAdapter creates a new Stripe billing adapter. The cache is
// optional; with a nil cache every lookup goes to Stripe.
func NewStripeAdapter(client *stripeclient.Client, cache providers.CacheProvider, ttlSeconds int) providers.BillingProvider {
	return &StripeAdapter{
		client:     client,
		cache:      cache,
		ttlSeconds: ttlSeconds,
	}
}

// SubscriptionForEmail resolves the subscription state for an email. Users
// with no Stripe customer or no subscription get a sentinel status instead
// of an error.
func (a *StripeAdapter) SubscriptionForEmail(ctx context.Context, email string) (*entities.Subscription, error) {
	cacheKey := "subscription:" + email

	if a.cache != nil {
		if data, err := a.cache.Get(ctx, cacheKey); err == nil {
			var cached entities.Subscription
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	subscription, err := a.lookup(ctx, email)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if data, err := json.Marshal(subscription); err == nil {
			if err := a.cache.Set(ctx, cacheKey, data, a.ttlSeconds); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("Failed to cache subscription status")
			}
		}
	}

	return subscription, nil
}

func (a *StripeAdapter) lookup(ctx context.Context, email string) (*entities.Subscription, error) {
	customer, err := a.client.FindCustomerByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewExternalError(fmt.Sprintf("failed to look up customer for %s", email), err)
	}
	if customer == nil {
		return &entities.Subscription{Status: entities.SubscriptionStatusNoCustomer}, nil
	}

	subscription, err := a.client.LatestSubscription(ctx, customer.ID)
	if err != nil {
		return nil, apperrors.NewExternalError(fmt.Sprintf("failed to look up subscription for %s", email), err)
	}
	if subscription == nil {
		return &entities.Subscription{
			Status:     entities.SubscriptionStatusNoSubscription,
			CustomerID: customer.ID,
		}, nil
	}

	result := &entities.Subscription{
		Status:            subscription.Status,
		CurrentPeriodEnd:  subscription.CurrentPeriodEnd,
		CancelAtPeriodEnd: subscription.CancelAtPeriodEnd,
		CustomerID:        customer.ID,
	}
	if len(subscription.Items.Data) > 0 {
		price := subscription.Items.Data[0].Price
		result.Plan = price.Nickname
		result.Amount = price.UnitAmount
		result.Currency = price.Currency
	}
	return result, nil
}
