package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/academics/subjects/controller"
)

func SubjectAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.SubjectHandler{DB: db}

	grp := admin.Group("/subjects")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

// Guru hanya membaca daftar mapel untuk form absensi & nilai.
func SubjectTeacherRoutes(teacher fiber.Router, db *gorm.DB) {
	h := &controller.SubjectHandler{DB: db}

	grp := teacher.Group("/subjects")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
}
