package config

import (
	"log"
	"os"
	"strings"

	sdkconfig "github.com/databricks/databricks-sdk-go/config"
)

// HostResolver resolves the Databricks backend host from one source.
// Implementations must not panic; an error just moves resolution to the next
// source in line.
type HostResolver interface {
	ResolveHost() (string, error)
}

// SDKResolver resolves the host through the Databricks SDK's unified client
// config (environment, .databrickscfg profiles, platform-injected values).
// Preferred in Databricks Apps, where the platform wires the SDK for us.
type SDKResolver struct{}

// ResolveHost runs the SDK's config resolution and returns the resulting host.
func (SDKResolver) ResolveHost() (string, error) {
	cfg := &sdkconfig.Config{}
	if err := cfg.EnsureResolved(); err != nil {
		return "", err
	}
	return cfg.Host, nil
}

// EnvResolver reads the host straight from DATABRICKS_HOST. Fallback for
// environments without a usable SDK config (plain containers, local dev).
type EnvResolver struct{}

func (EnvResolver) ResolveHost() (string, error) {
	return os.Getenv("DATABRICKS_HOST"), nil
}

// ResolveBackend walks the resolvers in order and returns the first non-empty
// host, normalized. It never fails: with no resolvable host the returned
// config has an empty Host and API forwarding reports the problem per-request.
// Called exactly once at startup.
func ResolveBackend(resolvers ...HostResolver) BackendConfig {
	backend := BackendConfig{
		Token: os.Getenv("DATABRICKS_TOKEN"), // local dev only
	}
	for _, r := range resolvers {
		host, err := r.ResolveHost()
		if err != nil {
			log.Printf("⚠️  Could not resolve Databricks host via %T: %v", r, err)
			continue
		}
		if host = NormalizeHost(host); host != "" {
			backend.Host = host
			break
		}
	}
	return backend
}

// NormalizeHost strips the scheme and trailing slashes from a workspace host.
// The SDK hands back scheme-qualified hosts while DATABRICKS_HOST is
// conventionally bare; the proxy always rebuilds the URL as https://{host}.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimRight(host, "/")
}
