package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/entities"
	apperrors "github.com/ratewatch/medicaid-rates-backend/pkg/errors"
)

type stubEmailProvider struct {
	to      string
	subject string
	body    string
	sent    int
}

func (s *stubEmailProvider) Send(_ context.Context, to, subject, body string) error {
	s.to = to
	s.subject = subject
	s.body = body
	s.sent++
	return nil
}

func TestContactService_SendForwardsToSupportInbox(t *testing.T) {
	sender := &stubEmailProvider{}
	service := NewContactService(sender, "support@example.com", nil)

	err := service.Send(context.Background(), &entities.ContactMessage{
		Name:    "Jordan Smith",
		Email:   "jordan@example.com",
		Subject: "Rate question",
		Message: "Is the Ohio dental schedule current?",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sender.sent)
	assert.Equal(t, "support@example.com", sender.to)
	assert.Equal(t, "Rate question", sender.subject)
	assert.Contains(t, sender.body, "jordan@example.com")
}

func TestContactService_SendEscapesHTML(t *testing.T) {
	sender := &stubEmailProvider{}
	service := NewContactService(sender, "support@example.com", nil)

	err := service.Send(context.Background(), &entities.ContactMessage{
		Name:    "<script>",
		Email:   "jordan@example.com",
		Message: "hello",
	})
	require.NoError(t, err)
	assert.NotContains(t, sender.body, "<script>")
}

type stubCache struct {
	keys map[string][]byte
}

func (s *stubCache) Get(_ context.Context, key string) ([]byte, error) {
	return s.keys[key], nil
}

func (s *stubCache) Set(_ context.Context, key string, value []byte, _ int) error {
	if s.keys == nil {
		s.keys = map[string][]byte{}
	}
	s.keys[key] = value
	return nil
}

func (s *stubCache) Delete(_ context.Context, key string) error {
	delete(s.keys, key)
	return nil
}

func (s *stubCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.keys[key]
	return ok, nil
}

func TestContactService_SendAppliesCooldown(t *testing.T) {
	sender := &stubEmailProvider{}
	service := NewContactService(sender, "support@example.com", &stubCache{})

	message := entities.ContactMessage{
		Name:    "Jordan Smith",
		Email:   "jordan@example.com",
		Message: "first",
	}
	require.NoError(t, service.Send(context.Background(), &message))

	repeat := message
	repeat.Message = "second"
	err := service.Send(context.Background(), &repeat)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, 1, sender.sent)
}

func TestContactService_SendValidatesFields(t *testing.T) {
	sender := &stubEmailProvider{}
	service := NewContactService(sender, "support@example.com", nil)

	cases := []struct {
		name    string
		message entities.ContactMessage
	}{
		{"missing name", entities.ContactMessage{Email: "a@b.com", Message: "hi"}},
		{"missing email", entities.ContactMessage{Name: "A", Message: "hi"}},
		{"bad email", entities.ContactMessage{Name: "A", Email: "nope", Message: "hi"}},
		{"missing message", entities.ContactMessage{Name: "A", Email: "a@b.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			message := tc.message
			err := service.Send(context.Background(), &message)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		})
	}

	assert.Zero(t, sender.sent)
}
