package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pkbm_backend/internals/features/finance/billings/service"
)

// POST /billings/generate
type GenerateBillingsRequest struct {
	ClassroomID    uuid.UUID        `json:"classroom_id"`
	FeeCategoryID  uuid.UUID        `json:"fee_category_id"`
	AcademicYearID *uuid.UUID       `json:"academic_year_id"` // kosong → tahun ajaran aktif
	Period         *string          `json:"period"`           // "YYYY-MM", kosong → bulan berjalan
	OneTime        bool             `json:"one_time"`         // true → tanpa periode (sekali bayar)
	Amount         *decimal.Decimal `json:"amount"`           // kosong → default kategori
	Notes          *string          `json:"notes" validate:"omitempty,max=500"`
}

func (r GenerateBillingsRequest) ToInput(academicYearID uuid.UUID) service.GenerateInput {
	in := service.GenerateInput{
		ClassroomID:    r.ClassroomID,
		FeeCategoryID:  r.FeeCategoryID,
		AcademicYearID: academicYearID,
		Period:         r.Period,
		Amount:         r.Amount,
		Notes:          r.Notes,
	}
	if r.OneTime {
		empty := ""
		in.Period = &empty
	}
	return in
}
