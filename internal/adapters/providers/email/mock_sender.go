package email

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/providers"
)

// MockSender implements a mock email sender for local development. Messages
// are logged instead of delivered.
type MockSender struct{}

// NewMockSender creates a new mock email sender
func NewMockSender() providers.EmailProvider {
	return &MockSender{}
}

// Send logs the message and reports success.
func (m *MockSender) Send(ctx context.Context, to, subject, body string) error {
	log.Info().
		Str("to", to).
		Str("subject", subject).
		Int("body_bytes", len(body)).
		Msg("Mock email sender: message not delivered")
	return nil
}
