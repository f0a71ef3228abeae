package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/finance/billings/model"
	helper "pkbm_backend/internals/helpers"
)

var ErrBillingNotFound = fiber.NewError(fiber.StatusNotFound, "Tagihan tidak ditemukan")

// BillingView: tagihan + nama siswa & kategori untuk tampilan.
type BillingView struct {
	model.StudentBilling `gorm:"embedded"`

	StudentName     string          `gorm:"column:student_name" json:"student_name"`
	FeeCategoryName string          `gorm:"column:fee_category_name" json:"fee_category_name"`
	FeeCategoryCode string          `gorm:"column:fee_category_code" json:"fee_category_code"`
	Remaining       decimal.Decimal `gorm:"-" json:"remaining"`
}

type ListFilter struct {
	AcademicYearID *uuid.UUID
	ClassroomID    *uuid.UUID
	FeeCategoryID  *uuid.UUID
	StudentID      *uuid.UUID
	Status         string
	Period         *string
}

func baseViewQuery(db *gorm.DB) *gorm.DB {
	return db.Table("student_billings AS b").
		Joins("JOIN users u ON u.user_id = b.student_billing_student_id").
		Joins("JOIN fee_categories f ON f.fee_category_id = b.student_billing_fee_category_id")
}

const viewColumns = "b.*, u.user_name AS student_name, f.fee_category_name, f.fee_category_code"

func fillRemaining(rows []BillingView) {
	for i := range rows {
		rows[i].Remaining = rows[i].StudentBilling.Remaining()
	}
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Params) ([]BillingView, int64, error) {
	q := baseViewQuery(db.WithContext(ctx))
	if f.AcademicYearID != nil {
		q = q.Where("b.student_billing_academic_year_id = ?", *f.AcademicYearID)
	}
	if f.ClassroomID != nil {
		q = q.Joins("JOIN student_profiles sp ON sp.student_profile_user_id = b.student_billing_student_id").
			Where("sp.student_profile_classroom_id = ?", *f.ClassroomID)
	}
	if f.FeeCategoryID != nil {
		q = q.Where("b.student_billing_fee_category_id = ?", *f.FeeCategoryID)
	}
	if f.StudentID != nil {
		q = q.Where("b.student_billing_student_id = ?", *f.StudentID)
	}
	if f.Status != "" {
		q = q.Where("b.student_billing_status = ?", f.Status)
	}
	if f.Period != nil {
		q = q.Where("b.student_billing_period = ?", *f.Period)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count billings")
	}

	order := p.OrderClause(map[string]string{
		"created_at": "b.student_billing_created_at",
		"due_date":   "b.student_billing_due_date",
		"amount":     "b.student_billing_amount",
		"status":     "b.student_billing_status",
		"student":    "u.user_name",
	}, "created_at")

	var rows []BillingView
	if err := q.Select(viewColumns).
		Order(order).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list billings")
	}
	fillRemaining(rows)
	return rows, total, nil
}

// Outstanding: tagihan siswa yang belum lunas, jatuh tempo terdekat dulu.
func Outstanding(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]BillingView, error) {
	var rows []BillingView
	if err := baseViewQuery(db.WithContext(ctx)).
		Select(viewColumns).
		Where("b.student_billing_student_id = ? AND b.student_billing_status <> ?", studentID, model.BillingStatusPaid).
		Order("b.student_billing_due_date ASC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list outstanding billings")
	}
	fillRemaining(rows)
	return rows, nil
}

func GetView(ctx context.Context, db *gorm.DB, id uuid.UUID) (BillingView, error) {
	var row BillingView
	err := baseViewQuery(db.WithContext(ctx)).
		Select(viewColumns).
		Where("b.student_billing_id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, ErrBillingNotFound
	}
	if err != nil {
		return row, errors.Wrap(err, "load billing")
	}
	row.Remaining = row.StudentBilling.Remaining()
	return row, nil
}
