package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FREIGHT_GEOCODER", "")
	t.Setenv("FREIGHT_ANCHOR_PLACE", "")
	t.Setenv("FREIGHT_GEOCODE_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Geocode.Provider != "nominatim" {
		t.Errorf("provider = %q, want nominatim", cfg.Geocode.Provider)
	}
	if cfg.Geocode.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.Geocode.Timeout)
	}
	if cfg.Anchor.Place != "Indore, Madhya Pradesh, India" {
		t.Errorf("anchor = %q", cfg.Anchor.Place)
	}
	if cfg.HTTP.UploadMaxBytes != 5*1024*1024 {
		t.Errorf("upload max = %d", cfg.HTTP.UploadMaxBytes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FREIGHT_GEOCODE_TIMEOUT", "2s")
	t.Setenv("FREIGHT_ANCHOR_PLACE", "Bhopal, Madhya Pradesh, India")
	t.Setenv("FREIGHT_UPLOAD_MAX_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Geocode.Timeout != 2*time.Second {
		t.Errorf("timeout = %v, want 2s", cfg.Geocode.Timeout)
	}
	if cfg.Anchor.Place != "Bhopal, Madhya Pradesh, India" {
		t.Errorf("anchor = %q", cfg.Anchor.Place)
	}
	if cfg.HTTP.UploadMaxBytes != 1024 {
		t.Errorf("upload max = %d", cfg.HTTP.UploadMaxBytes)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("FREIGHT_GEOCODE_TIMEOUT", "soon")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Geocode.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want default 5s", cfg.Geocode.Timeout)
	}
}

func TestLoad_GoogleRequiresKey(t *testing.T) {
	t.Setenv("FREIGHT_GEOCODER", "google")
	t.Setenv("FREIGHT_GOOGLE_MAPS_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when google geocoder has no key")
	}
}
