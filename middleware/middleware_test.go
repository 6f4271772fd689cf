package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicyApp() *fiber.App {
	app := fiber.New()
	app.Use(MethodPolicy())
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMethodPolicy(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		expected int
	}{
		{"GET on api path allowed", fiber.MethodGet, "/api/2.0/me", fiber.StatusOK},
		{"POST on api path allowed", fiber.MethodPost, "/api/2.0/sql", fiber.StatusOK},
		{"PUT on api path allowed", fiber.MethodPut, "/api/2.0/sql", fiber.StatusOK},
		{"PATCH on api path allowed", fiber.MethodPatch, "/api/2.0/sql", fiber.StatusOK},
		{"DELETE on api path allowed", fiber.MethodDelete, "/api/2.0/sql", fiber.StatusOK},
		{"HEAD on api path rejected", fiber.MethodHead, "/api/2.0/me", fiber.StatusMethodNotAllowed},
		{"OPTIONS on api path rejected", fiber.MethodOptions, "/api/2.0/me", fiber.StatusMethodNotAllowed},
		{"GET on static path allowed", fiber.MethodGet, "/index.html", fiber.StatusOK},
		{"GET on root allowed", fiber.MethodGet, "/", fiber.StatusOK},
		{"POST on static path rejected", fiber.MethodPost, "/favicon.ico", fiber.StatusMethodNotAllowed},
		{"DELETE on static path rejected", fiber.MethodDelete, "/index.html", fiber.StatusMethodNotAllowed},
		{"bare /api without slash is a static path", fiber.MethodPost, "/api", fiber.StatusMethodNotAllowed},
	}

	app := newPolicyApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.expected, resp.StatusCode)
		})
	}
}

func TestCacheControl(t *testing.T) {
	app := fiber.New()
	app.Use(CacheControl())
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		name      string
		path      string
		wantCache bool
	}{
		{"root gets no-cache headers", "/", true},
		{"index.html gets no-cache headers", "/index.html", true},
		{"nested html gets no-cache headers", "/pages/about.html", true},
		{"script is cacheable", "/app.js", false},
		{"stylesheet is cacheable", "/app.css", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			require.NoError(t, err)
			resp.Body.Close()

			if tt.wantCache {
				assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get(fiber.HeaderCacheControl))
				assert.Equal(t, "no-cache", resp.Header.Get("Pragma"))
				assert.Equal(t, "0", resp.Header.Get("Expires"))
			} else {
				assert.NotEqual(t, "no-cache, no-store, must-revalidate", resp.Header.Get(fiber.HeaderCacheControl))
				assert.Empty(t, resp.Header.Get("Pragma"))
				assert.Empty(t, resp.Header.Get("Expires"))
			}
		})
	}
}

func TestCacheControlAppliesToErrorResponses(t *testing.T) {
	// The policy binds to the path, not to the component that answered
	app := fiber.New()
	app.Use(CacheControl())
	app.Use(MethodPolicy())
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/index.html", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get(fiber.HeaderCacheControl))
}
