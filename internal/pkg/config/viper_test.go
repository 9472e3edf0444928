package config

import (
	"bytes"
	"testing"
	"time"
)

const testYAML = `
app:
  name: mfa-system
  enabled: true
  port: 8081
  cors: "http://localhost:3000, https://example.com,,  "
  secret: "aGVsbG8td29ybGQ="
  timeout_seconds: 15
  ttl_minutes: 5
  retention_hours: 24
  ratio: 0.75
`

func newTestConfig(t *testing.T) *Viper {
	t.Helper()

	cfg, err := NewViperFromBytes("yaml", []byte(testYAML))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func TestViper(t *testing.T) {
	t.Run("ScalarGetters", func(t *testing.T) {
		// Arrange
		cfg := newTestConfig(t)

		// Act & Assert
		if got := cfg.GetString("app.name"); got != "mfa-system" {
			t.Fatalf("GetString = %q", got)
		}
		if !cfg.GetBool("app.enabled") {
			t.Fatalf("GetBool must be true")
		}
		if got := cfg.GetInt("app.port"); got != 8081 {
			t.Fatalf("GetInt = %d", got)
		}
		if got := cfg.GetInt32("app.port"); got != 8081 {
			t.Fatalf("GetInt32 = %d", got)
		}
		if got := cfg.GetInt64("app.port"); got != 8081 {
			t.Fatalf("GetInt64 = %d", got)
		}
		if got := cfg.GetFloat64("app.ratio"); got != 0.75 {
			t.Fatalf("GetFloat64 = %v", got)
		}
	})

	t.Run("DurationGetters", func(t *testing.T) {
		cfg := newTestConfig(t)

		if got := cfg.GetSecond("app.timeout_seconds"); got != 15*time.Second {
			t.Fatalf("GetSecond = %v", got)
		}
		if got := cfg.GetMinute("app.ttl_minutes"); got != 5*time.Minute {
			t.Fatalf("GetMinute = %v", got)
		}
		if got := cfg.GetHour("app.retention_hours"); got != 24*time.Hour {
			t.Fatalf("GetHour = %v", got)
		}
	})

	t.Run("GetBinary", func(t *testing.T) {
		cfg := newTestConfig(t)

		if got := cfg.GetBinary("app.secret"); !bytes.Equal(got, []byte("hello-world")) {
			t.Fatalf("GetBinary = %q", got)
		}
		if got := cfg.GetBinary("app.name"); got != nil {
			t.Fatalf("invalid base64 must yield nil, got %q", got)
		}
	})

	t.Run("GetArrayTrimsAndDropsEmpty", func(t *testing.T) {
		// Arrange
		cfg := newTestConfig(t)

		// Act
		got := cfg.GetArray("app.cors")

		// Assert
		want := []string{"http://localhost:3000", "https://example.com"}
		if len(got) != len(want) {
			t.Fatalf("GetArray = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("GetArray[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("GetArrayUnsetKey", func(t *testing.T) {
		cfg := newTestConfig(t)

		if got := cfg.GetArray("app.missing"); len(got) != 0 {
			t.Fatalf("unset key must yield an empty slice, got %v", got)
		}
	})

	t.Run("FromBytesRequiresType", func(t *testing.T) {
		if _, err := NewViperFromBytes("", []byte(testYAML)); err == nil {
			t.Fatalf("expected an error for a missing config type")
		}
	})
}
