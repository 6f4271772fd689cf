package handlers

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"genie-gateway/config"
	"genie-gateway/metrics"
	"genie-gateway/utils"
)

// RuntimeConfigHandler synthesizes /config.js, the script the SPA loads
// before anything else to pick up its runtime configuration.
type RuntimeConfigHandler struct {
	backend config.BackendConfig
}

// NewRuntimeConfigHandler creates a new runtime config handler
func NewRuntimeConfigHandler(cfg *config.Config) *RuntimeConfigHandler {
	return &RuntimeConfigHandler{backend: cfg.Backend}
}

// Serve returns the generated configuration script. The body is rebuilt on
// every request: resource ids come from the environment and some hosting
// models swap those between deployments without restarting the process.
func (h *RuntimeConfigHandler) Serve(c *fiber.Ctx) error {
	genieSpaceID := os.Getenv("GENIE_SPACE_ID")
	sqlWarehouseID := os.Getenv("SQL_WAREHOUSE_ID")
	clientID := os.Getenv("DATABRICKS_CLIENT_ID")
	isOBO := clientID != ""

	utils.LogInfo("📤 Serving config.js:",
		"databricksHost", h.backend.Host,
		"genieSpaceId", genieSpaceID,
		"sqlWarehouseId", sqlWarehouseID,
		"usingOBO", isOBO,
	)
	metrics.IncrementRuntimeConfigServed()

	c.Set(fiber.HeaderContentType, "application/javascript")
	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")

	var b strings.Builder
	b.WriteString("// Runtime configuration injected by server\n")
	b.WriteString("window.APP_CONFIG = {\n")
	fmt.Fprintf(&b, "  databricksHost: '%s',\n", escapeJS(h.backend.Host))
	fmt.Fprintf(&b, "  genieSpaceId: '%s',\n", escapeJS(genieSpaceID))
	fmt.Fprintf(&b, "  sqlWarehouseId: '%s',\n", escapeJS(sqlWarehouseID))
	fmt.Fprintf(&b, "  isOBO: %t,\n", isOBO)
	fmt.Fprintf(&b, "  clientId: '%s'\n", escapeJS(clientID))
	b.WriteString("};\n")
	b.WriteString("console.log('✅ Runtime config loaded from server:', window.APP_CONFIG);\n")
	b.WriteString("console.log('🔐 Authentication mode:', window.APP_CONFIG.isOBO ? 'OAuth/OBO' : 'Token');\n")

	return c.SendString(b.String())
}

// escapeJS makes a value safe inside a single-quoted JS string literal.
func escapeJS(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
	)
	return r.Replace(s)
}
