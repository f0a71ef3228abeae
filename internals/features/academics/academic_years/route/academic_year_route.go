package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/academics/academic_years/controller"
	"pkbm_backend/internals/features/academics/academic_years/service"
)

func AcademicYearAdminRoutes(admin fiber.Router, db *gorm.DB, active *service.ActiveYear) {
	h := &controller.AcademicYearHandler{DB: db, Active: active}

	grp := admin.Group("/academic-years")
	grp.Get("/", h.List)
	grp.Get("/active", h.GetActive)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Post("/:id/activate", h.Activate)
}
