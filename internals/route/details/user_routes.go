package details

import (
	"github.com/gofiber/fiber/v2"

	ProfileRoute "pkbm_backend/internals/features/users/profiles/route"
)

func UserRoutes(r fiber.Router, d Deps) {
	ProfileRoute.ProfileUserRoutes(r, d.DB)
}

func UserAdminRoutes(r fiber.Router, d Deps) {
	ProfileRoute.ProfileAdminRoutes(r, d.DB)
}
