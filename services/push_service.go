// services/push_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"dayclap-backend/config"
	"dayclap-backend/models"
)

// ErrSubscriptionGone marks an endpoint the push service reports as
// permanently invalid (410-class). Only this error may clear a stored
// subscription; transient failures must not.
var ErrSubscriptionGone = errors.New("push subscription no longer valid")

var ErrPushNotConfigured = errors.New("push sending not configured")

type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Badge string `json:"badge,omitempty"`
}

type Pusher interface {
	Send(sub *models.PushSubscription, payload PushPayload) error
}

// PushSender delivers via the Web Push protocol, encrypting the payload to
// the subscriber's key material and signing with the process-wide VAPID pair.
type PushSender struct{}

func NewPushSender() *PushSender {
	return &PushSender{}
}

func (s *PushSender) Send(sub *models.PushSubscription, payload PushPayload) error {
	privateKey := config.VAPIDPrivateKey()
	if privateKey == "" {
		return ErrPushNotConfigured
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotification(data, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}, &webpush.Options{
		Subscriber:      config.VAPIDSubject(),
		VAPIDPublicKey:  config.VAPIDPublicKey(),
		VAPIDPrivateKey: privateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}
