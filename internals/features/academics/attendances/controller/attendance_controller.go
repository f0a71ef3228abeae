package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/attendances/dto"
	"pkbm_backend/internals/features/academics/attendances/service"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/helpers/dbtime"
)

type AttendanceHandler struct {
	DB     *gorm.DB
	Active *yearService.ActiveYear
}

// GET /attendances?classroom_id=&subject_id=&date=
func (h *AttendanceHandler) Sheet(c *fiber.Ctx) error {
	classroomID, err := helper.ParseUUIDQuery(c, "classroom_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	subjectID, err := helper.ParseUUIDQuery(c, "subject_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	ve := helper.NewValidationError()
	if classroomID == nil {
		ve.Add("classroom_id", "classroom_id wajib diisi")
	}
	date, derr := dbtime.ParseDate(c.Query("date"))
	if derr != nil {
		ve.Add("date", "date harus berformat YYYY-MM-DD")
	}
	if err := ve.OrNil(); err != nil {
		return helper.FromError(c, err)
	}

	sheet, err := service.LoadSheet(c.UserContext(), h.DB, *classroomID, subjectID, date)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", sheet)
}

// PUT /attendances
func (h *AttendanceHandler) Save(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var in dto.SaveAttendanceRequest
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

	input, err := in.ToInput(*yearID, userID)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"date": {err.Error()}})
	}
	sheet, err := service.Save(c.UserContext(), h.DB, input)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "presensi berhasil disimpan", sheet)
}
