package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/grades/controller"
)

func ScoreCategoryAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.ScoreCategoryHandler{DB: db}

	grp := admin.Group("/score-categories")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

// Dipasang di grup guru (guru + admin).
func GradeTeacherRoutes(teacher fiber.Router, db *gorm.DB, active *yearService.ActiveYear) {
	h := &controller.GradeHandler{DB: db, Active: active}
	cat := &controller.ScoreCategoryHandler{DB: db}

	teacher.Get("/score-categories", cat.List)

	grp := teacher.Group("/grades")
	grp.Get("/", h.Sheet)
	grp.Get("/recap", h.Recap)
	grp.Put("/", h.Save)
}
