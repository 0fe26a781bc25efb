package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/job-autofill/internal/fill"
	"github.com/spigell/job-autofill/internal/messaging"
	"github.com/spigell/job-autofill/internal/overlay"
)

// These tests share the global viper instance and must not run in parallel.

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig()
	if err != nil {
		t.Fatalf("getting config: %v", err)
	}

	if config.Timing != fill.DefaultTiming() {
		t.Fatalf("expected default timing, got %+v", config.Timing)
	}
	if config.Site.Pattern != overlay.DefaultPattern || config.Site.Host != overlay.DefaultHost {
		t.Fatalf("unexpected site defaults %+v", config.Site)
	}
	if config.Relay.Listen != messaging.DefaultListen {
		t.Fatalf("unexpected relay address %q", config.Relay.Listen)
	}
	if !config.Browser.Stealth {
		t.Fatalf("expected stealth to be on by default")
	}
}

func TestLoadProfileFallsBackToSample(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	p, err := loadProfile(&Config{}, zap.New(core))
	if err != nil {
		t.Fatalf("loading profile: %v", err)
	}
	if p.FirstName == "" {
		t.Fatalf("expected the sample profile")
	}
	if logs.FilterMessage("no profile configured, using the built-in sample profile").Len() != 1 {
		t.Fatalf("expected a warning about the sample profile, got %v", logs.All())
	}
}

func TestLoadProfileRejectsUnknownKeys(t *testing.T) {
	_, err := loadProfile(&Config{Profile: map[string]any{"first-nmae": "Jane"}}, zap.NewNop())
	if err == nil {
		t.Fatalf("expected a typo in the profile to be rejected")
	}
}

func TestResolveToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(file, []byte("s3cret\n"), 0o600); err != nil {
		t.Fatalf("writing token: %v", err)
	}

	token, err := resolveToken(&Config{Relay: RelayConfig{TokenFile: file}})
	if err != nil || token != "s3cret" {
		t.Fatalf("expected token from file, got %q, %v", token, err)
	}

	t.Setenv("AUTOFILL_RELAY_TOKEN_FILE", file)
	token, err = resolveToken(&Config{})
	if err != nil || token != "s3cret" {
		t.Fatalf("expected token from environment, got %q, %v", token, err)
	}
}

func TestResolveTokenUnset(t *testing.T) {
	viper.Set("relay.token-file", "")
	t.Cleanup(func() { viper.Set("relay.token-file", nil) })

	token, err := resolveToken(&Config{})
	if err != nil || token != "" {
		t.Fatalf("expected no token, got %q, %v", token, err)
	}
}
