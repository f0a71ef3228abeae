package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/classrooms/controller"
)

func ClassroomAdminRoutes(admin fiber.Router, db *gorm.DB, active *yearService.ActiveYear) {
	h := &controller.ClassroomHandler{DB: db, Active: active}

	grp := admin.Group("/classrooms")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Get("/:id/students", h.Students)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func ClassroomTeacherRoutes(teacher fiber.Router, db *gorm.DB, active *yearService.ActiveYear) {
	h := &controller.ClassroomHandler{DB: db, Active: active}

	grp := teacher.Group("/classrooms")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Get("/:id/students", h.Students)
}
