package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"genie-gateway/config"
	"genie-gateway/metrics"
	"genie-gateway/utils"
)

// HeaderForwardedAccessToken carries the short-lived user token injected by
// Databricks Apps when on-behalf-of authorization is enabled.
const HeaderForwardedAccessToken = "X-Forwarded-Access-Token"

const proxyUserAgent = "Databricks-App/1.0"

// ProxyHandler forwards /api/* requests to the Databricks workspace and
// relays the response back unchanged. One attempt per request; the SPA owns
// retry policy.
type ProxyHandler struct {
	backend config.BackendConfig
	client  *fasthttp.Client
	scheme  string
	timeout time.Duration
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(cfg *config.Config) *ProxyHandler {
	return &ProxyHandler{
		backend: cfg.Backend,
		client: &fasthttp.Client{
			ReadTimeout:  cfg.ProxyTimeout,
			WriteTimeout: cfg.ProxyTimeout,
		},
		scheme:  "https",
		timeout: cfg.ProxyTimeout,
	}
}

// Forward proxies the inbound request to the configured workspace host. The
// upstream status, headers and body are relayed byte for byte, minus the
// hop-by-hop Transfer-Encoding and Connection headers. Transport failures map
// to a 500 with a description; upstream HTTP errors pass through untouched.
func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	if h.backend.Host == "" {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Databricks host not configured"})
	}

	// Path and query string verbatim, no re-encoding.
	url := h.scheme + "://" + h.backend.Host + c.OriginalURL()
	utils.LogInfo("🔄 Proxying", c.Method(), url)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(c.Method())
	req.SetRequestURI(url)
	req.Header.SetContentType(fiber.MIMEApplicationJSON)
	req.Header.SetUserAgent(proxyUserAgent)
	if auth := selectAuthorization(c); auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	req.SetBodyRaw(c.Body())

	if err := h.client.DoTimeout(req, resp, h.timeout); err != nil {
		metrics.IncrementUpstreamError()
		utils.LogRequestError(c, "PROXY_UPSTREAM", err, "url", url)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": fmt.Sprintf("Proxy error: %v", err)})
	}

	metrics.RecordUpstreamRequest(c.Method(), resp.StatusCode())
	if resp.StatusCode() >= fiber.StatusBadRequest {
		utils.LogInfo("❌ API error", resp.StatusCode(), c.Method(), c.OriginalURL())
	}

	resp.CopyTo(c.Response())
	c.Response().Header.Del(fiber.HeaderTransferEncoding)
	c.Response().Header.Del(fiber.HeaderConnection)
	return nil
}

// selectAuthorization picks the outbound credential. The platform-injected
// OBO token takes precedence over a caller-supplied Authorization header;
// with neither, the request goes upstream unauthenticated and the workspace
// rejects it on its own terms. The proxy never fabricates credentials.
func selectAuthorization(c *fiber.Ctx) string {
	if token := c.Get(HeaderForwardedAccessToken); token != "" {
		return "Bearer " + token
	}
	return c.Get(fiber.HeaderAuthorization)
}
