package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Raw JWT yang sudah diverifikasi, disimpan middleware auth.
const LocRawToken = "raw_token"

// GetRawAccessToken mengambil access token dari:
// 1) Authorization header "Bearer <token>"
// 2) cookie "access_token" (kalau cookieFallback)
func GetRawAccessToken(c *fiber.Ctx, cookieFallback bool) string {
	authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	if cookieFallback {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}
