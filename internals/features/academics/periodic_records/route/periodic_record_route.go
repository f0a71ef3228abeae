package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/periodic_records/controller"
)

func PeriodicRecordAdminRoutes(admin fiber.Router, db *gorm.DB, active *yearService.ActiveYear) {
	h := &controller.PeriodicRecordHandler{DB: db, Active: active}

	grp := admin.Group("/periodic-records")
	grp.Get("/", h.List)
	grp.Put("/", h.Upsert)
}
