package config

import (
	"os"
	"strconv"
	"strings"
)

// Env helpers with the defaults the rest of the service assumes. Values are
// read at call time so tests can override them.

func FrontendURL() string {
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		return v
	}
	return "http://localhost:5173"
}

func AdminEmail() string {
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		return v
	}
	return "admin@example.com"
}

func BackendAPIKey() string {
	return os.Getenv("BACKEND_API_KEY")
}

func InviteCooldownSeconds() int {
	if v := os.Getenv("INVITE_COOLDOWN_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 300
}

func AllowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOW_ORIGINS")
	if raw == "" {
		raw = "https://dayclap.com,https://www.dayclap.com,http://localhost:5173"
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func VAPIDPublicKey() string  { return os.Getenv("VAPID_PUBLIC_KEY") }
func VAPIDPrivateKey() string { return os.Getenv("VAPID_PRIVATE_KEY") }

// VAPIDSubject is the contact URI asserted to push services when signing.
func VAPIDSubject() string {
	email := os.Getenv("VAPID_EMAIL")
	if email == "" {
		email = AdminEmail()
	}
	return "mailto:" + email
}
