package controllers

import (
	"regexp"
	"testing"
	"time"

	"videoshub-backend/internal/config"
	"videoshub-backend/internal/models"
)

func TestTicketExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		expiresAt int64
		want      bool
	}{
		{"fresh ticket", now.Add(5 * time.Minute).UnixMilli(), false},
		{"expires this instant", now.UnixMilli(), true},
		{"expired a minute ago", now.Add(-time.Minute).UnixMilli(), true},
		{"expired long before any sweep", now.Add(-30 * time.Hour).UnixMilli(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &models.RecoveryTicket{ExpiresAt: tt.expiresAt}
			if got := ticketExpired(ticket, now); got != tt.want {
				t.Errorf("ticketExpired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateTicketHash(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		hash := generateTicketHash()
		if !pattern.MatchString(hash) {
			t.Fatalf("hash %q is not 32 hex chars", hash)
		}
		if seen[hash] {
			t.Fatalf("hash %q repeated", hash)
		}
		seen[hash] = true
	}
}

func TestRecoveryLinkUsesFrontendOrigin(t *testing.T) {
	old := config.App.CorsWhitelist
	defer func() { config.App.CorsWhitelist = old }()

	config.App.CorsWhitelist = []string{"https://videoshub.example", "https://other.example"}
	if got := recoveryLink("abc123"); got != "https://videoshub.example/recovery/abc123" {
		t.Fatalf("recoveryLink = %q", got)
	}

	config.App.CorsWhitelist = nil
	if got := recoveryLink("abc123"); got != "http://localhost:3000/recovery/abc123" {
		t.Fatalf("recoveryLink fallback = %q", got)
	}
}
