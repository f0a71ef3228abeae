package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/grades/dto"
	"pkbm_backend/internals/features/academics/grades/service"
	helper "pkbm_backend/internals/helpers"
)

type GradeHandler struct {
	DB     *gorm.DB
	Active *yearService.ActiveYear
}

// yearOr: academic_year_id eksplisit, atau tahun ajaran aktif.
func (h *GradeHandler) yearOr(id *uuid.UUID, ve *helper.ValidationError) uuid.UUID {
	if id != nil {
		return *id
	}
	active, ok := h.Active.Get()
	if !ok {
		ve.Add("academic_year_id", "academic_year_id wajib diisi (tahun ajaran aktif belum diset)")
	}
	return active
}

func requiredQuery(c *fiber.Ctx, name string, ve *helper.ValidationError) uuid.UUID {
	id, err := helper.ParseUUIDQuery(c, name)
	if err != nil {
		ve.Add(name, name+" bukan UUID valid")
		return uuid.Nil
	}
	if id == nil {
		ve.Add(name, name+" wajib diisi")
		return uuid.Nil
	}
	return *id
}

// GET /grades?classroom_id=&subject_id=&score_category_id=&academic_year_id=
func (h *GradeHandler) Sheet(c *fiber.Ctx) error {
	ve := helper.NewValidationError()
	key := service.SheetKey{
		ClassroomID:     requiredQuery(c, "classroom_id", ve),
		SubjectID:       requiredQuery(c, "subject_id", ve),
		ScoreCategoryID: requiredQuery(c, "score_category_id", ve),
	}
	yearID, err := helper.ParseUUIDQuery(c, "academic_year_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	key.AcademicYearID = h.yearOr(yearID, ve)
	if err := ve.OrNil(); err != nil {
		return helper.FromError(c, err)
	}

	sheet, err := service.LoadSheet(c.UserContext(), h.DB, key)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", sheet)
}

// GET /grades/recap?classroom_id=&subject_id=&academic_year_id=
func (h *GradeHandler) Recap(c *fiber.Ctx) error {
	ve := helper.NewValidationError()
	classroomID := requiredQuery(c, "classroom_id", ve)
	subjectID := requiredQuery(c, "subject_id", ve)
	yearID, err := helper.ParseUUIDQuery(c, "academic_year_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	year := h.yearOr(yearID, ve)
	if err := ve.OrNil(); err != nil {
		return helper.FromError(c, err)
	}

	rows, err := service.Recap(c.UserContext(), h.DB, classroomID, subjectID, year)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// PUT /grades
func (h *GradeHandler) Save(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var in dto.SaveGradesRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.FromError(c, err)
	}
	ve := helper.NewValidationError()
	yearID := h.yearOr(in.AcademicYearID, ve)
	if err := ve.OrNil(); err != nil {
		return helper.FromError(c, err)
	}

	sheet, err := service.Save(c.UserContext(), h.DB, in.ToInput(yearID, userID))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "nilai berhasil disimpan", sheet)
}
