package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		RequestIDMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	})
}

// RequestIDMiddleware tags every request with a correlation id that is
// echoed in the X-Request-ID response header.
func (m *middleware) RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("request_id", id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}
