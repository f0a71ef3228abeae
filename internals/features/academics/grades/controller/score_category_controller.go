package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/academics/grades/dto"
	"pkbm_backend/internals/features/academics/grades/service"
	helper "pkbm_backend/internals/helpers"
)

type ScoreCategoryHandler struct {
	DB *gorm.DB
}

func (h *ScoreCategoryHandler) List(c *fiber.Ctx) error {
	rows, err := service.ListCategories(c.UserContext(), h.DB)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

func (h *ScoreCategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveScoreCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.FromError(c, err)
	}
	m, err := service.CreateCategory(c.UserContext(), h.DB, in.ToInput())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "kategori nilai dibuat", m)
}

func (h *ScoreCategoryHandler) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var in dto.SaveScoreCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.FromError(c, err)
	}
	m, err := service.UpdateCategory(c.UserContext(), h.DB, id, in.ToInput())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "kategori nilai diperbarui", m)
}

func (h *ScoreCategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := service.DeleteCategory(c.UserContext(), h.DB, id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "kategori nilai dihapus", fiber.Map{"score_category_id": id})
}
