package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/users/profiles/controller"
)

func ProfileUserRoutes(user fiber.Router, db *gorm.DB) {
	h := &controller.ProfileHandler{DB: db}
	user.Get("/me/profile", h.GetMyProfile)
}

func ProfileAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.ProfileHandler{DB: db}
	grp := admin.Group("/users")
	grp.Get("/:id/profile", h.GetUserProfile)
	grp.Put("/:id/profile", h.SaveUserProfile)
}
