package entities

// Subscription status values returned to the dashboard's gate check.
const (
	SubscriptionStatusNoCustomer     = "no_customer"
	SubscriptionStatusNoSubscription = "no_subscription"
)

// Subscription is the billing state for a user email, as reported by the
// hosted billing provider. Status carries either a provider status
// ("active", "trialing", "past_due", ...) or one of the sentinel values
// above.
type Subscription struct {
	Status            string `json:"status"`
	Plan              string `json:"plan,omitempty"`
	Amount            int64  `json:"amount,omitempty"`
	Currency          string `json:"currency,omitempty"`
	CurrentPeriodEnd  int64  `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end,omitempty"`
	CustomerID        string `json:"-"`
}

// Active reports whether the subscription grants dashboard access.
func (s *Subscription) Active() bool {
	return s.Status == "active" || s.Status == "trialing"
}

// ContactMessage is a contact-form submission forwarded over email.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
