package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/finance/reports/controller"
)

func ReportAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.ReportHandler{DB: db}

	grp := admin.Group("/reports")
	grp.Get("/dashboard", h.Dashboard)
	grp.Get("/financial", h.Financial)
}
