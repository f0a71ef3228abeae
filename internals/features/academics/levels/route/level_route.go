package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/academics/levels/controller"
)

func LevelAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.LevelHandler{DB: db}

	grp := admin.Group("/levels")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}
