package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/periodic_records/dto"
	"pkbm_backend/internals/features/academics/periodic_records/service"
	helper "pkbm_backend/internals/helpers"
)

type PeriodicRecordHandler struct {
	DB     *gorm.DB
	Active *yearService.ActiveYear
}

// PUT /periodic-records
func (h *PeriodicRecordHandler) Upsert(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var in dto.UpsertPeriodicRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.FromError(c, err)
	}

	var yearID = in.AcademicYearID
	if yearID == nil {
		id, ok := h.Active.Get()
		if !ok {
			return helper.JsonValidationError(c, map[string][]string{
				"academic_year_id": {"academic_year_id wajib diisi (tahun ajaran aktif belum diset)"},
			})
		}
		yearID = &id
	}

	row, err := service.Upsert(c.UserContext(), h.DB, in.ToInput(*yearID, userID))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "data periodik berhasil disimpan", row)
}

// GET /periodic-records?student_profile_id=
func (h *PeriodicRecordHandler) List(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDQuery(c, "student_profile_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if id == nil {
		return helper.JsonValidationError(c, map[string][]string{"student_profile_id": {"student_profile_id wajib diisi"}})
	}
	rows, err := service.ListByStudent(c.UserContext(), h.DB, *id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}
