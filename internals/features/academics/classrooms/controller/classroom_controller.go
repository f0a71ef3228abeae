package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/classrooms/dto"
	"pkbm_backend/internals/features/academics/classrooms/service"
	helper "pkbm_backend/internals/helpers"
)

type ClassroomHandler struct {
	DB     *gorm.DB
	Active *yearService.ActiveYear
}

// GET /classrooms?academic_year_id=&level_id=&page=&per_page=&sort_by=name|created_at
// academic_year_id kosong = tahun ajaran aktif; all=1 untuk semua tahun.
func (h *ClassroomHandler) List(c *fiber.Ctx) error {
	yearID, err := helper.ParseUUIDQuery(c, "academic_year_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if yearID == nil && c.Query("all") != "1" {
		if id, ok := h.Active.Get(); ok {
			yearID = &id
		}
	}
	levelID, err := helper.ParseUUIDQuery(c, "level_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	rows, total, err := service.List(c.UserContext(), h.DB, yearID, levelID, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

func (h *ClassroomHandler) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	row, err := service.Get(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", row)
}

// GET /classrooms/:id/students
func (h *ClassroomHandler) Students(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := service.Students(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

func (h *ClassroomHandler) parse(c *fiber.Ctx) (dto.SaveClassroomRequest, error) {
	var in dto.SaveClassroomRequest
	if err := c.BodyParser(&in); err != nil {
		return in, fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if in.AcademicYearID == nil {
		if id, ok := h.Active.Get(); ok {
			in.AcademicYearID = &id
		}
	}
	return in, nil
}

func (h *ClassroomHandler) Create(c *fiber.Ctx) error {
	in, err := h.parse(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := service.Create(c.UserContext(), h.DB, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "kelas dibuat", m)
}

func (h *ClassroomHandler) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	in, err := h.parse(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := service.Update(c.UserContext(), h.DB, id, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "kelas diperbarui", m)
}

func (h *ClassroomHandler) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := service.Delete(c.UserContext(), h.DB, id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "kelas dihapus", fiber.Map{"classroom_id": id})
}
