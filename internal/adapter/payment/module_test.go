package payment

import (
	"testing"

	"github.com/polkiloo/storefront/internal/config"
)

func TestNewValidatorUsesConfig(t *testing.T) {
	v, err := newValidator(validatorParams{Config: &config.Config{}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(AllowList); !ok {
		t.Fatalf("expected allow-list without gateway, got %T", v)
	}

	v, err = newValidator(validatorParams{Config: &config.Config{PaymentGatewayAddress: "http://pay.example.com"}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(*HTTPClient); !ok {
		t.Fatalf("expected http client, got %T", v)
	}

	if _, err := newValidator(validatorParams{Config: &config.Config{PaymentGatewayAddress: "relative"}, Logger: testLogger()}); err == nil {
		t.Fatal("expected error for relative gateway url")
	}
}
