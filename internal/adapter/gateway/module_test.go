package gateway

import (
	"testing"

	"github.com/polkiloo/storefront/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{StripeSecretKey: "sk_test_cfg", StripeWebhookSecret: "whsec_cfg"}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stripeClient, ok := client.(*StripeClient)
	if !ok {
		t.Fatalf("expected *StripeClient, got %T", client)
	}
	if stripeClient.webhookSecret != "whsec_cfg" {
		t.Fatalf("unexpected webhook secret %q", stripeClient.webhookSecret)
	}

	if _, err := newClient(clientParams{Config: &config.Config{}, Logger: testLogger()}); err == nil {
		t.Fatal("expected error without secret key")
	}
}
