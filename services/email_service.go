// services/email_service.go
package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"dayclap-backend/models"
)

var ErrEmailNotConfigured = errors.New("email sending not configured")

type Mailer interface {
	Send(to, subject, html string) error
}

// EmailSender delivers through the HTTP email gateway. Credentials and the
// endpoint are resolved per send from the settings row, falling back to env
// values when no row exists yet. A send either gets an explicit success
// confirmation from the gateway or it is an error.
type EmailSender struct {
	settings SettingsSource
	client   *http.Client
}

func NewEmailSender(settings SettingsSource) *EmailSender {
	return &EmailSender{
		settings: settings,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type emailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
}

type emailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *EmailSender) Send(to, subject, html string) error {
	return s.SendFrom("", to, subject, html)
}

// SendFrom sends with an explicit sender address; empty from uses the
// configured default sender.
func (s *EmailSender) SendFrom(from, to, subject, html string) error {
	key, endpoint, sender, err := s.resolve()
	if err != nil {
		return err
	}
	if from == "" {
		from = sender
	}

	body, err := json.Marshal(emailRequest{From: from, To: to, Subject: subject, HTML: html})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("email gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	// A 2xx alone is not success: the gateway must confirm delivery.
	var parsed emailResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || !parsed.Success {
		return fmt.Errorf("email gateway did not confirm delivery: %s", bytes.TrimSpace(raw))
	}
	return nil
}

func (s *EmailSender) resolve() (key, endpoint, sender string, err error) {
	var settings *models.EmailSettings
	if s.settings != nil {
		settings, err = s.settings.Settings()
		if err != nil {
			log.Printf("Email settings lookup failed, falling back to env: %v", err)
		}
	}

	if settings != nil {
		key = settings.SendingKey
		endpoint = settings.APIEndpoint
		sender = settings.DefaultSender
	}
	if key == "" {
		key = os.Getenv("EMAIL_SENDING_KEY")
	}
	if endpoint == "" {
		endpoint = os.Getenv("EMAIL_API_ENDPOINT")
	}
	if sender == "" {
		sender = os.Getenv("MAIL_DEFAULT_SENDER")
	}

	switch {
	case key == "":
		return "", "", "", fmt.Errorf("%w: missing sending key", ErrEmailNotConfigured)
	case endpoint == "":
		return "", "", "", fmt.Errorf("%w: missing API endpoint", ErrEmailNotConfigured)
	case sender == "":
		return "", "", "", fmt.Errorf("%w: missing default sender", ErrEmailNotConfigured)
	}
	return key, endpoint, sender, nil
}
