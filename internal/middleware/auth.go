package middleware

import (
	"videoshub-backend/internal/session"

	"github.com/gofiber/fiber/v3"
)

const channelIdKey = "channelId"

// LoadSession resolves the session cookie once per request. Anonymous
// requests pass through with channel id 0; handlers that must not be
// anonymous add RequireAuth behind this.
func LoadSession(sessions *session.Manager) fiber.Handler {
	return func(c fiber.Ctx) error {
		if data := sessions.Load(c); data != nil {
			c.Locals(channelIdKey, data.ChannelId)
		} else {
			c.Locals(channelIdKey, uint(0))
		}
		return c.Next()
	}
}

// RequireAuth is the guard predicate: the request is authorized iff its
// session carries a non-empty channel id.
func RequireAuth(c fiber.Ctx) error {
	if ChannelId(c) == 0 {
		c.Status(fiber.StatusUnauthorized)
		return c.JSON(fiber.Map{
			"message": "Unauthenticated",
		})
	}
	return c.Next()
}

// ChannelId returns the authenticated channel id, or 0 for anonymous
// requests.
func ChannelId(c fiber.Ctx) uint {
	if id, ok := c.Locals(channelIdKey).(uint); ok {
		return id
	}
	return 0
}
