package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ratewatch/medicaid-rates-backend/pkg/config"
)

// Client is a minimal Stripe REST client covering the customer and
// subscription lookups the dashboard's gate check needs. Calls run through a
// circuit breaker so a Stripe outage fails fast instead of stalling every
// page load.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a new Stripe client
func NewClient(cfg *config.StripeConfig) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY must be set")
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "stripe",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		secretKey: cfg.SecretKey,
		baseURL:   cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		breaker: breaker,
	}, nil
}

// Customer is the subset of Stripe's customer object we read.
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Subscription is the subset of Stripe's subscription object we read.
type Subscription struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	Items             struct {
		Data []struct {
			Price struct {
				Nickname   string `json:"nickname"`
				UnitAmount int64  `json:"unit_amount"`
				Currency   string `json:"currency"`
				Product    string `json:"product"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

// FindCustomerByEmail returns the first customer matching the email, or nil
// when none exists.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	params := url.Values{}
	params.Set("email", email)
	params.Set("limit", "1")

	var resp listResponse[Customer]
	if err := c.get(ctx, "/customers", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &resp.Data[0], nil
}

// LatestSubscription returns the customer's most recent subscription in any
// status, or nil when the customer has never subscribed.
func (c *Client) LatestSubscription(ctx context.Context, customerID string) (*Subscription, error) {
	params := url.Values{}
	params.Set("customer", customerID)
	params.Set("status", "all")
	params.Set("limit", "1")

	var resp listResponse[Subscription]
	if err := c.get(ctx, "/subscriptions", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return &resp.Data[0], nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.secretKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("stripe returned status %d: %s", resp.StatusCode, string(data))
		}
		return data, nil
	})
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("failed to decode stripe response: %w", err)
	}
	return nil
}
