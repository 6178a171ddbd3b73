package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vodomont/backend/pkg/config"
)

// EmailSender delivers owner notifications through a transactional mail
// HTTP API (Resend-compatible).
type EmailSender struct {
	apiURL     string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewEmailSender creates a new email sender
func NewEmailSender(cfg *config.MailConfig) (*EmailSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("MAIL_API_KEY must be set")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("MAIL_FROM must be set")
	}

	return &EmailSender{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		from:   cfg.From,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// EmailMessage represents a mail API request
type EmailMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html,omitempty"`
}

// EmailResponse represents the mail API response
type EmailResponse struct {
	ID string `json:"id"`
}

// Send delivers a plain text email and returns the provider message ID
func (s *EmailSender) Send(to, subject, body string) (string, error) {
	message := EmailMessage{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequest("POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("mail API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var emailResp EmailResponse
	if err := json.Unmarshal(respBody, &emailResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if emailResp.ID == "" {
		return "", fmt.Errorf("no message ID in response")
	}

	return emailResp.ID, nil
}
