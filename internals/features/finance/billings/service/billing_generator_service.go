package service

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/features/finance/billings/model"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/helpers/dbtime"
)

const DefaultDueDays = 14

var ErrAcademicYearNotFound = fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")

// Kolaborator generator. Semua menerima tx agar cek & insert berada di transaksi yang sama.
type (
	ClassroomRoster interface {
		StudentIDs(ctx context.Context, tx *gorm.DB, classroomID uuid.UUID) ([]uuid.UUID, error)
	}
	FeeCategoryLookup interface {
		DefaultAmount(ctx context.Context, tx *gorm.DB, feeCategoryID uuid.UUID) (decimal.Decimal, error)
	}
	AcademicYearLookup interface {
		Exists(ctx context.Context, tx *gorm.DB, academicYearID uuid.UUID) (bool, error)
	}
)

type GenerateInput struct {
	ClassroomID    uuid.UUID
	FeeCategoryID  uuid.UUID
	AcademicYearID uuid.UUID
	Period         *string          // nil → bulan berjalan, "" → sekali bayar
	Amount         *decimal.Decimal // nil → default_amount kategori
	Notes          *string
}

type GenerateResult struct {
	Created int             `json:"created"`
	Skipped int             `json:"skipped"`
	Period  *string         `json:"period"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
}

type Generator struct {
	DB         *gorm.DB
	Roster     ClassroomRoster
	Categories FeeCategoryLookup
	Years      AcademicYearLookup
	Clock      dbtime.Clock
	DueDays    int
}

// Generate membuat tagihan untuk setiap siswa di kelas, kecuali yang sudah punya
// tagihan dengan (siswa, kategori, tahun ajaran, periode) yang sama.
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (GenerateResult, error) {
	var res GenerateResult

	now := dbtime.SystemClock()
	if g.Clock != nil {
		now = g.Clock()
	}
	dueDays := g.DueDays
	if dueDays <= 0 {
		dueDays = DefaultDueDays
	}

	ve := helper.NewValidationError()
	if in.ClassroomID == uuid.Nil {
		ve.Add("classroom_id", "classroom_id wajib diisi")
	}
	if in.FeeCategoryID == uuid.Nil {
		ve.Add("fee_category_id", "fee_category_id wajib diisi")
	}
	if in.AcademicYearID == uuid.Nil {
		ve.Add("academic_year_id", "academic_year_id wajib diisi")
	}
	if in.Amount != nil && in.Amount.IsNegative() {
		ve.Add("amount", "amount tidak boleh negatif")
	}
	period := dbtime.PeriodToken(now)
	if in.Period != nil {
		p, err := dbtime.NormalizePeriod(*in.Period)
		if err != nil {
			ve.Add("period", err.Error())
		}
		period = p
	}
	if err := ve.OrNil(); err != nil {
		return res, err
	}

	dueDate := dbtime.StartOfDay(now).AddDate(0, 0, dueDays)

	err := g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := g.Years.Exists(ctx, tx, in.AcademicYearID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAcademicYearNotFound
		}

		amount, err := g.Categories.DefaultAmount(ctx, tx, in.FeeCategoryID)
		if err != nil {
			return err
		}
		if in.Amount != nil {
			amount = *in.Amount
		}

		students, err := g.Roster.StudentIDs(ctx, tx, in.ClassroomID)
		if err != nil {
			return err
		}

		created, skipped := 0, 0
		for _, sid := range students {
			row := model.StudentBilling{
				StudentBillingStudentID:      sid,
				StudentBillingFeeCategoryID:  in.FeeCategoryID,
				StudentBillingAcademicYearID: in.AcademicYearID,
				StudentBillingPeriod:         period,
				StudentBillingAmount:         amount,
				StudentBillingPaidAmount:     decimal.Zero,
				StudentBillingDueDate:        dueDate,
				StudentBillingStatus:         model.BillingStatusUnpaid,
				StudentBillingNotes:          in.Notes,
			}
			r := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "student_billing_student_id"},
					{Name: "student_billing_fee_category_id"},
					{Name: "student_billing_academic_year_id"},
					{Name: "student_billing_period"},
				},
				DoNothing: true,
			}).Create(&row)
			if r.Error != nil {
				return errors.Wrap(r.Error, "insert student billing")
			}
			if r.RowsAffected > 0 {
				created++
			} else {
				skipped++
			}
		}

		res = GenerateResult{
			Created: created,
			Skipped: skipped,
			Amount:  amount,
			DueDate: dueDate,
		}
		if period != "" {
			res.Period = &period
		}
		return nil
	})
	if err != nil {
		return GenerateResult{}, err
	}

	log.Printf("[INFO] Generate tagihan kelas=%s kategori=%s periode=%q → created=%d skipped=%d",
		in.ClassroomID, in.FeeCategoryID, period, res.Created, res.Skipped)
	return res, nil
}
