package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the response header carrying the request's ray ID.
const Header = "X-Ray-Id"

// New returns a middleware that assigns every request a ray ID. An incoming
// X-Ray-Id header is honored so upstream proxies can correlate; otherwise a
// fresh UUID is minted. The ID is stored in Locals under "ray_id" for the
// logger and echoed back in the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
