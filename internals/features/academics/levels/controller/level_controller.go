package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/academics/levels/dto"
	"pkbm_backend/internals/features/academics/levels/service"
	helper "pkbm_backend/internals/helpers"
)

type LevelHandler struct {
	DB *gorm.DB
}

func (h *LevelHandler) List(c *fiber.Ctx) error {
	rows, err := service.List(c.UserContext(), h.DB)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

func (h *LevelHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := service.Create(c.UserContext(), h.DB, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "jenjang dibuat", m)
}

func (h *LevelHandler) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var in dto.SaveLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := service.Update(c.UserContext(), h.DB, id, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "jenjang diperbarui", m)
}

func (h *LevelHandler) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := service.Delete(c.UserContext(), h.DB, id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "jenjang dihapus", fiber.Map{"level_id": id})
}
