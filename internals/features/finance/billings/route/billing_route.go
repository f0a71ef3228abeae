package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	classroomService "pkbm_backend/internals/features/academics/classrooms/service"
	"pkbm_backend/internals/features/finance/billings/controller"
	"pkbm_backend/internals/features/finance/billings/service"
	feeService "pkbm_backend/internals/features/finance/fee_categories/service"
)

func BillingAdminRoutes(admin fiber.Router, db *gorm.DB, active *yearService.ActiveYear, dueDays int) {
	h := &controller.BillingHandler{
		DB: db,
		Generator: &service.Generator{
			DB:         db,
			Roster:     classroomService.Roster{},
			Categories: feeService.Lookup{},
			Years:      yearService.Lookup{},
			DueDays:    dueDays,
		},
		Active: active,
	}

	grp := admin.Group("/billings")
	grp.Post("/generate", h.Generate)
	grp.Get("/", h.List)
	grp.Get("/outstanding", h.Outstanding)
	grp.Get("/:id", h.Get)
}
