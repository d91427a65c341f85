package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/providers"
	"github.com/ratewatch/medicaid-rates-backend/pkg/config"
)

// ResendSender sends transactional email via the Resend API
type ResendSender struct {
	apiKey      string
	fromAddress string
	baseURL     string
	httpClient  *http.Client
}

// NewResendSender creates a new Resend email sender
func NewResendSender(cfg *config.EmailConfig) (providers.EmailProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("EMAIL_API_KEY must be set")
	}

	return &ResendSender{
		apiKey:      cfg.APIKey,
		fromAddress: cfg.FromAddress,
		baseURL:     cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type emailResponse struct {
	ID string `json:"id"`
}

// Send delivers a single message and returns once the API accepts it.
func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	payload := emailRequest{
		From:    s.fromAddress,
		To:      []string{to},
		Subject: subject,
		HTML:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var emailResp emailResponse
	if err := json.Unmarshal(respBody, &emailResp); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if emailResp.ID == "" {
		return fmt.Errorf("no message ID in response")
	}
	return nil
}
