package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is echoed on every response.
	Header = "X-Ray-ID"
	// LocalsKey is where the id is stored for logger.WithRayID.
	LocalsKey = "ray_id"
)

// New returns a middleware assigning every request a ray id. An incoming X-Ray-ID is
// kept so traces can span services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
