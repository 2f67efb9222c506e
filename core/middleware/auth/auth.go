package auth

import "github.com/gofiber/fiber/v2"

// Config holds the settings for the API key middleware.
type Config struct {
	// ApiKey is the expected key. An empty key disables the check, which is
	// intended for local development only.
	ApiKey string
}

// New returns a middleware that rejects requests whose X-Api-Key header does
// not match the configured key.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		if c.Get("X-Api-Key") != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
