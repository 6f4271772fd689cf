package main

import (
	"github.com/gofiber/fiber/v2"

	"genie-gateway/config"
	"genie-gateway/handlers"
	"genie-gateway/metrics"
	"genie-gateway/middleware"
)

// setupRoutes wires the router: the method policy, the cache-control policy,
// the config injector, the API proxy and the static asset mount.
func setupRoutes(app *fiber.App, cfg *config.Config) {
	// Applied to every response so the SPA shell is never cached, whichever
	// component produced it. Registered first so it also wraps the method
	// policy's rejections.
	app.Use(middleware.CacheControl())

	// Classification by (method, path) happens before any handler runs
	app.Use(middleware.MethodPolicy())

	// Optional Prometheus metrics
	if cfg.EnableMetrics {
		app.Use(metrics.PrometheusMiddleware())
	}

	// Initialize handlers
	runtimeConfigHandler := handlers.NewRuntimeConfigHandler(cfg)
	proxyHandler := handlers.NewProxyHandler(cfg)

	// Runtime configuration script, regenerated per request
	app.Get("/config.js", runtimeConfigHandler.Serve)

	// Everything under /api/ goes to the workspace; allowed methods were
	// already enforced by the method policy
	app.All("/api/*", proxyHandler.Forward)

	// SPA bundle
	app.Static("/", cfg.StaticDir, fiber.Static{
		Index: "index.html",
	})
}
