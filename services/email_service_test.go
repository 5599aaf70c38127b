package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"dayclap-backend/models"
)

type fakeSettingsSource struct {
	settings *models.EmailSettings
	err      error
}

func (f *fakeSettingsSource) Settings() (*models.EmailSettings, error) {
	return f.settings, f.err
}

func gatewaySettings(endpoint string) *fakeSettingsSource {
	return &fakeSettingsSource{settings: &models.EmailSettings{
		SendingKey:    "test-key",
		APIEndpoint:   endpoint,
		DefaultSender: "noreply@dayclap.com",
	}}
}

func clearEmailEnv(t *testing.T) {
	t.Setenv("EMAIL_SENDING_KEY", "")
	t.Setenv("EMAIL_API_ENDPOINT", "")
	t.Setenv("MAIL_DEFAULT_SENDER", "")
}

// Test 1: A 2xx with an explicit success flag is the only success
func TestEmailSender_Success(t *testing.T) {
	clearEmailEnv(t)

	var got emailRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "message": "queued"}`))
	}))
	defer server.Close()

	sender := NewEmailSender(gatewaySettings(server.URL))
	err := sender.Send("bob@example.com", "Hello", "<p>Hi</p>")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "noreply@dayclap.com", got.From)
	assert.Equal(t, "bob@example.com", got.To)
	assert.Equal(t, "Hello", got.Subject)
	assert.Equal(t, "<p>Hi</p>", got.HTML)
}

// Test 2: A 2xx without the success flag is a failure, never "probably fine"
func TestEmailSender_MissingSuccessFlagFails(t *testing.T) {
	clearEmailEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "accepted"}`))
	}))
	defer server.Close()

	sender := NewEmailSender(gatewaySettings(server.URL))
	err := sender.Send("bob@example.com", "Hello", "<p>Hi</p>")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "did not confirm delivery")
}

// Test 3: Non-2xx responses fail
func TestEmailSender_GatewayErrorFails(t *testing.T) {
	clearEmailEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success": false}`, http.StatusBadGateway)
	}))
	defer server.Close()

	sender := NewEmailSender(gatewaySettings(server.URL))
	err := sender.Send("bob@example.com", "Hello", "<p>Hi</p>")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

// Test 4: Missing configuration aborts before any network call
func TestEmailSender_MissingKeyAbortsBeforeSend(t *testing.T) {
	clearEmailEnv(t)

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	source := gatewaySettings(server.URL)
	source.settings.SendingKey = ""

	sender := NewEmailSender(source)
	err := sender.Send("bob@example.com", "Hello", "<p>Hi</p>")

	assert.ErrorIs(t, err, ErrEmailNotConfigured)
	assert.Zero(t, requests)
}

// Test 5: Env values back a missing settings row
func TestEmailSender_EnvFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	t.Setenv("EMAIL_SENDING_KEY", "env-key")
	t.Setenv("EMAIL_API_ENDPOINT", server.URL)
	t.Setenv("MAIL_DEFAULT_SENDER", "noreply@dayclap.com")

	sender := NewEmailSender(&fakeSettingsSource{err: assert.AnError})
	err := sender.Send("bob@example.com", "Hello", "<p>Hi</p>")

	assert.NoError(t, err)
}

// Test 6: An explicit sender address overrides the default
func TestEmailSender_SendFrom(t *testing.T) {
	clearEmailEnv(t)

	var got emailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	sender := NewEmailSender(gatewaySettings(server.URL))
	err := sender.SendFrom("alice@example.com", "bob@example.com", "Join us", "<p>Hi</p>")

	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.From)
}
