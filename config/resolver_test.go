package config

import (
	"errors"
	"os"
	"testing"
)

type stubResolver struct {
	host string
	err  error
}

func (s stubResolver) ResolveHost() (string, error) {
	return s.host, s.err
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare host unchanged", "adb-1.azuredatabricks.net", "adb-1.azuredatabricks.net"},
		{"strips https scheme", "https://adb-1.azuredatabricks.net", "adb-1.azuredatabricks.net"},
		{"strips http scheme", "http://localhost:8443", "localhost:8443"},
		{"strips trailing slash", "https://adb-1.azuredatabricks.net/", "adb-1.azuredatabricks.net"},
		{"trims whitespace", "  adb-1.azuredatabricks.net  ", "adb-1.azuredatabricks.net"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHost(tt.input); got != tt.expected {
				t.Errorf("NormalizeHost(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolveBackend(t *testing.T) {
	t.Run("first resolver wins", func(t *testing.T) {
		backend := ResolveBackend(
			stubResolver{host: "https://sdk-host.cloud.databricks.com"},
			stubResolver{host: "env-host.cloud.databricks.com"},
		)
		if backend.Host != "sdk-host.cloud.databricks.com" {
			t.Errorf("expected sdk host, got %q", backend.Host)
		}
	})

	t.Run("falls back on resolver error", func(t *testing.T) {
		backend := ResolveBackend(
			stubResolver{err: errors.New("sdk unavailable")},
			stubResolver{host: "env-host.cloud.databricks.com"},
		)
		if backend.Host != "env-host.cloud.databricks.com" {
			t.Errorf("expected env fallback, got %q", backend.Host)
		}
	})

	t.Run("falls back on empty host", func(t *testing.T) {
		backend := ResolveBackend(
			stubResolver{host: ""},
			stubResolver{host: "env-host.cloud.databricks.com"},
		)
		if backend.Host != "env-host.cloud.databricks.com" {
			t.Errorf("expected env fallback, got %q", backend.Host)
		}
	})

	t.Run("never fails with no resolvable host", func(t *testing.T) {
		backend := ResolveBackend(
			stubResolver{err: errors.New("sdk unavailable")},
			stubResolver{host: ""},
		)
		if backend.Host != "" {
			t.Errorf("expected empty host, got %q", backend.Host)
		}
	})

	t.Run("token always comes from the environment", func(t *testing.T) {
		os.Setenv("DATABRICKS_TOKEN", "dapi-local")
		defer os.Unsetenv("DATABRICKS_TOKEN")

		backend := ResolveBackend(stubResolver{host: "h"})
		if backend.Token != "dapi-local" {
			t.Errorf("expected dev token from env, got %q", backend.Token)
		}
	})
}

func TestEnvResolver(t *testing.T) {
	os.Setenv("DATABRICKS_HOST", "https://adb-9.azuredatabricks.net/")
	defer os.Unsetenv("DATABRICKS_HOST")

	host, err := EnvResolver{}.ResolveHost()
	if err != nil {
		t.Fatalf("env resolver should not error: %v", err)
	}
	// Normalization happens in ResolveBackend, not in the resolver itself
	if host != "https://adb-9.azuredatabricks.net/" {
		t.Errorf("unexpected host %q", host)
	}

	backend := ResolveBackend(EnvResolver{})
	if backend.Host != "adb-9.azuredatabricks.net" {
		t.Errorf("expected normalized host, got %q", backend.Host)
	}
}
