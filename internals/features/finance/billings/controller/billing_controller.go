package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/finance/billings/dto"
	"pkbm_backend/internals/features/finance/billings/model"
	"pkbm_backend/internals/features/finance/billings/service"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/helpers/dbtime"
)

type BillingHandler struct {
	DB        *gorm.DB
	Generator *service.Generator
	Active    *yearService.ActiveYear
}

// POST /billings/generate
func (h *BillingHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateBillingsRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.FromError(c, err)
	}

	yearID := uuid.Nil
	if in.AcademicYearID != nil {
		yearID = *in.AcademicYearID
	} else if id, ok := h.Active.Get(); ok {
		yearID = id
	} else {
		return helper.JsonValidationError(c, map[string][]string{
			"academic_year_id": {"academic_year_id wajib diisi (tahun ajaran aktif belum diset)"},
		})
	}

	res, err := h.Generator.Generate(c.UserContext(), in.ToInput(yearID))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "tagihan berhasil dibuat", res)
}

// GET /billings?academic_year_id=&classroom_id=&fee_category_id=&student_id=&status=&period=
func (h *BillingHandler) List(c *fiber.Ctx) error {
	var (
		f   service.ListFilter
		err error
	)
	if f.AcademicYearID, err = helper.ParseUUIDQuery(c, "academic_year_id"); err != nil {
		return helper.FromError(c, err)
	}
	if f.ClassroomID, err = helper.ParseUUIDQuery(c, "classroom_id"); err != nil {
		return helper.FromError(c, err)
	}
	if f.FeeCategoryID, err = helper.ParseUUIDQuery(c, "fee_category_id"); err != nil {
		return helper.FromError(c, err)
	}
	if f.StudentID, err = helper.ParseUUIDQuery(c, "student_id"); err != nil {
		return helper.FromError(c, err)
	}

	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		switch model.BillingStatus(s) {
		case model.BillingStatusUnpaid, model.BillingStatusPartial, model.BillingStatusPaid:
			f.Status = s
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, "status harus unpaid|partial|paid")
		}
	}
	if raw, ok := c.Queries()["period"]; ok {
		p, err := dbtime.NormalizePeriod(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		f.Period = &p
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := service.List(c.UserContext(), h.DB, f, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /billings/outstanding?student_id=
func (h *BillingHandler) Outstanding(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDQuery(c, "student_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if studentID == nil {
		return helper.JsonValidationError(c, map[string][]string{"student_id": {"student_id wajib diisi"}})
	}
	rows, err := service.Outstanding(c.UserContext(), h.DB, *studentID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /billings/:id
func (h *BillingHandler) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	row, err := service.GetView(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", row)
}
