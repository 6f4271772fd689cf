package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// APIPrefix marks the paths forwarded to the Databricks workspace.
const APIPrefix = "/api/"

var apiMethods = map[string]struct{}{
	fiber.MethodGet:    {},
	fiber.MethodPost:   {},
	fiber.MethodPut:    {},
	fiber.MethodPatch:  {},
	fiber.MethodDelete: {},
}

// MethodPolicy classifies every request by (method, path) before routing:
// API paths accept GET/POST/PUT/PATCH/DELETE, everything else is GET-only.
// Disallowed combinations get a 405 without touching any downstream handler.
func MethodPolicy() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), APIPrefix) {
			if _, ok := apiMethods[c.Method()]; !ok {
				return fiber.ErrMethodNotAllowed
			}
			return c.Next()
		}
		if c.Method() != fiber.MethodGet {
			return fiber.ErrMethodNotAllowed
		}
		return c.Next()
	}
}
