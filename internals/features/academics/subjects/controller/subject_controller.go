package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/academics/subjects/dto"
	"pkbm_backend/internals/features/academics/subjects/service"
	helper "pkbm_backend/internals/helpers"
)

type SubjectHandler struct {
	DB *gorm.DB
}

// GET /subjects?search=&level_id=&page=&per_page=&sort_by=name|code|created_at
func (h *SubjectHandler) List(c *fiber.Ctx) error {
	levelID, err := helper.ParseUUIDQuery(c, "level_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	rows, total, err := service.List(c.UserContext(), h.DB, c.Query("search"), levelID, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

func (h *SubjectHandler) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := service.Get(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

func (h *SubjectHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveSubjectRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := service.Create(c.UserContext(), h.DB, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "mapel dibuat", m)
}

func (h *SubjectHandler) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var in dto.SaveSubjectRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := service.Update(c.UserContext(), h.DB, id, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "mapel diperbarui", m)
}

func (h *SubjectHandler) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := service.Delete(c.UserContext(), h.DB, id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "mapel dihapus", fiber.Map{"subject_id": id})
}
