package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/finance/fee_categories/dto"
	"pkbm_backend/internals/features/finance/fee_categories/service"
	helper "pkbm_backend/internals/helpers"
)

type FeeCategoryHandler struct {
	DB *gorm.DB
}

// GET /fee-categories?search=&page=&per_page=&sort_by=name|code|created_at
func (h *FeeCategoryHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	rows, total, err := service.List(c.UserContext(), h.DB, c.Query("search"), p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

func (h *FeeCategoryHandler) Get(c *fiber.Ctx) error {
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

func (h *FeeCategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFeeCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := service.Create(c.UserContext(), h.DB, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "kategori dibuat", m)
}

func (h *FeeCategoryHandler) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var in dto.UpdateFeeCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	m, err := service.Update(c.UserContext(), h.DB, id, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "kategori diperbarui", m)
}

func (h *FeeCategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := service.Delete(c.UserContext(), h.DB, id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "kategori dihapus", fiber.Map{"fee_category_id": id})
}
