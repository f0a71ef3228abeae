package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/academics/academic_years/dto"
	"pkbm_backend/internals/features/academics/academic_years/model"
	"pkbm_backend/internals/features/academics/academic_years/service"
	helper "pkbm_backend/internals/helpers"
)

type AcademicYearHandler struct {
	DB     *gorm.DB
	Active *service.ActiveYear
}

// GET /academic-years
func (h *AcademicYearHandler) List(c *fiber.Ctx) error {
	rows, err := service.List(c.UserContext(), h.DB)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /academic-years/active
func (h *AcademicYearHandler) GetActive(c *fiber.Ctx) error {
	id, ok := h.Active.Get()
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Tahun ajaran aktif belum diset")
	}
	var row model.AcademicYear
	if err := h.DB.WithContext(c.UserContext()).Where("academic_year_id = ?", id).Take(&row).Error; err != nil {
		return helper.FromError(c, service.ErrAcademicYearNotFound)
	}
	return helper.JsonOK(c, "ok", row)
}

// POST /academic-years/:id/activate
func (h *AcademicYearHandler) Activate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	row, err := service.Activate(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	h.Active.Set(row.AcademicYearID)
	row.AcademicYearIsActive = true
	log.Printf("[INFO] Tahun ajaran aktif → %s (%s)", row.AcademicYearName, row.AcademicYearID)
	return helper.JsonUpdated(c, "tahun ajaran aktif diperbarui", row)
}

// POST /academic-years
func (h *AcademicYearHandler) Create(c *fiber.Ctx) error {
	var req dto.SaveAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	in, err := req.ToInput()
	if err != nil {
		return helper.FromError(c, err)
	}
	row, err := service.Create(c.UserContext(), h.DB, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	if row.AcademicYearIsActive {
		h.Active.Set(row.AcademicYearID)
		log.Printf("[INFO] Tahun ajaran aktif → %s (%s)", row.AcademicYearName, row.AcademicYearID)
	}
	return helper.JsonCreated(c, "tahun ajaran dibuat", row)
}

// PUT /academic-years/:id
func (h *AcademicYearHandler) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.SaveAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	in, err := req.ToInput()
	if err != nil {
		return helper.FromError(c, err)
	}
	row, err := service.Update(c.UserContext(), h.DB, id, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "tahun ajaran diperbarui", row)
}
