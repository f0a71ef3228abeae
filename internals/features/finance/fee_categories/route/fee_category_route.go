package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/finance/fee_categories/controller"
)

func FeeCategoryAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.FeeCategoryHandler{DB: db}

	grp := admin.Group("/fee-categories")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}
