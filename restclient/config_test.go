package restclient

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", cfg.Timeout)
	}
	if !strings.HasPrefix(cfg.UserAgent, "restkit/") {
		t.Errorf("expected default user agent, got %q", cfg.UserAgent)
	}

	cfg = Config{Timeout: time.Second, UserAgent: "custom/1"}
	cfg.ApplyDefaults()
	if cfg.Timeout != time.Second || cfg.UserAgent != "custom/1" {
		t.Error("explicit values must be kept")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Timeout: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg = Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}

	cfg = Config{Timeout: time.Second, TLS: &TLSConfig{CertFile: "cert.pem"}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for cert without key")
	}
}

func TestTLSConfig_BuildEmpty(t *testing.T) {
	got, err := (&TLSConfig{}).Build()
	if err != nil || got != nil {
		t.Errorf("expected nil config for empty settings, got %v err=%v", got, err)
	}

	var nilCfg *TLSConfig
	got, err = nilCfg.Build()
	if err != nil || got != nil {
		t.Errorf("expected nil config for nil receiver, got %v err=%v", got, err)
	}
}

func TestTLSConfig_BuildSkipVerify(t *testing.T) {
	got, err := (&TLSConfig{SkipVerify: true}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || !got.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify set")
	}
	if got.MinVersion == 0 {
		t.Error("expected min version default")
	}
}
