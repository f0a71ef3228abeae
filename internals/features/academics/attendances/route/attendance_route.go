package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/attendances/controller"
)

// Dipasang di grup guru (guru + admin).
func AttendanceTeacherRoutes(teacher fiber.Router, db *gorm.DB, active *yearService.ActiveYear) {
	h := &controller.AttendanceHandler{DB: db, Active: active}

	grp := teacher.Group("/attendances")
	grp.Get("/", h.Sheet)
	grp.Put("/", h.Save)
}
