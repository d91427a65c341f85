package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	"github.com/ratewatch/medicaid-rates-backend/internal/domain/providers"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

// contactCooldownSeconds is how long a sender must wait between submissions.
const contactCooldownSeconds = 60

// ContactService forwards contact-form submissions over email
type ContactService struct {
	email providers.EmailProvider
	to    string
	cache providers.CacheProvider
}

// NewContactService creates a new contact service. The cache is optional;
// without it submissions are not rate limited.
func NewContactService(email providers.EmailProvider, to string, cache providers.CacheProvider) *ContactService {
	return &ContactService{
		email: email,
		to:    to,
		cache: cache,
	}
}

// Send validates a contact-form submission and forwards it to the support
// inbox. Validation failures block the send with a field-level message.
func (s *ContactService) Send(ctx context.Context, message *entities.ContactMessage) error {
	message.Name = strings.TrimSpace(message.Name)
	message.Subject = strings.TrimSpace(message.Subject)
	message.Message = strings.TrimSpace(message.Message)

	if message.Name == "" {
		return apperrors.NewValidationError("name is required")
	}
	email, err := normalizeEmail(message.Email)
	if err != nil {
		return err
	}
	message.Email = email
	if message.Message == "" {
		return apperrors.NewValidationError("message is required")
	}
	if message.Subject == "" {
		message.Subject = "Contact form submission"
	}

	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(message.Name),
		html.EscapeString(message.Email),
		html.EscapeString(message.Message),
	)

	if s.cache != nil {
		key := "contact:" + message.Email
		if exists, err := s.cache.Exists(ctx, key); err == nil && exists {
			return apperrors.NewValidationError("please wait a minute before sending another message")
		}
		if err := s.cache.Set(ctx, key, []byte("1"), contactCooldownSeconds); err != nil {
			log.Warn().Err(err).Msg("Failed to record contact cooldown")
		}
	}

	if err := s.email.Send(ctx, s.to, message.Subject, body); err != nil {
		return apperrors.NewExternalError("failed to send contact email", err)
	}
	return nil
}
