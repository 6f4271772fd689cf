package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// noCacheValue disables every caching layer between the browser and the
// gateway so the SPA shell is never served stale after a deployment.
const noCacheValue = "no-cache, no-store, must-revalidate"

// CacheControl applies the no-cache policy to HTML responses after the
// downstream handler has produced them, whichever component that was.
func CacheControl() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		path := c.Path()
		if strings.HasSuffix(path, ".html") || path == "/" || path == "/index.html" {
			c.Set(fiber.HeaderCacheControl, noCacheValue)
			c.Set("Pragma", "no-cache")
			c.Set("Expires", "0")
		}
		return err
	}
}
