// Genie Gateway
//
// Edge gateway for a Genie single-page application running on Databricks Apps.
// Serves the prebuilt asset bundle, injects runtime configuration via
// /config.js, and transparently forwards /api/* calls to the workspace,
// passing caller-supplied bearer credentials through.
package main

import (
	"log"
	"strings"
	"time"

	"genie-gateway/config"
	"genie-gateway/metrics"
	"genie-gateway/server"
	"genie-gateway/utils"
)

func main() {
	// Initialize logging
	utils.InitLogging()

	// Load configuration (resolves the backend host exactly once)
	cfg := config.LoadConfig()

	// Track application start time for startup duration logging
	startTime := time.Now()

	logStartupBanner(cfg)

	// Metrics live on their own listener so the public surface stays the SPA,
	// /config.js and /api/*
	if cfg.EnableMetrics {
		go func() {
			addr := ":" + cfg.MetricsPort
			utils.LogInfo("📊 Metrics listener starting", "addr", addr)
			if err := metrics.Serve(addr); err != nil {
				utils.LogError("METRICS_LISTENER", err, "addr", addr)
			}
		}()
	}

	// Create Fiber app with gateway middleware
	app := server.CreateFiberApp()
	setupRoutes(app, cfg)

	if err := server.ListenWithIPv6Fallback(app, cfg.Port, startTime); err != nil {
		log.Fatal("Gateway failed to start:", err)
	}
}

func logStartupBanner(cfg *config.Config) {
	oboMode := "NO"
	if cfg.IsOBO() {
		oboMode = "YES"
	}

	utils.LogInfo(strings.Repeat("=", 60))
	utils.LogInfo("🔧 Configuration Check:")
	utils.LogInfo("   Databricks Host:", valueOrNotSet(cfg.Backend.Host))
	utils.LogInfo("   GENIE_SPACE_ID:", valueOrNotSet(cfg.GenieSpaceID))
	utils.LogInfo("   SQL_WAREHOUSE_ID:", valueOrNotSet(cfg.SQLWarehouseID))
	utils.LogInfo("   DATABRICKS_CLIENT_ID:", maskSecret(cfg.ClientID))
	utils.LogInfo("   OAuth/OBO Mode:", oboMode)
	utils.LogInfo("   PORT:", cfg.Port)
	utils.LogInfo(strings.Repeat("=", 60))
}

func valueOrNotSet(v string) string {
	if v == "" {
		return "NOT SET"
	}
	return v
}

// maskSecret keeps enough of a credential to recognize it in logs
func maskSecret(v string) string {
	if v == "" {
		return "NOT SET"
	}
	if len(v) > 20 {
		return v[:20] + "..."
	}
	return v
}
