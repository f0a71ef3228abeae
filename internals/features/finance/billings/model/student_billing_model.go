// file: internals/features/finance/billings/model/student_billing_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================================
// ENUM: status tagihan (diturunkan dari paid vs amount)
// =========================================================

type BillingStatus string

const (
	BillingStatusUnpaid  BillingStatus = "unpaid"
	BillingStatusPartial BillingStatus = "partial"
	BillingStatusPaid    BillingStatus = "paid"
)

// StatusAfterPayment: status sesudah sebuah pembayaran diterapkan.
// paid bila newPaid >= amount, selain itu partial. Tidak pernah mundur ke unpaid.
func StatusAfterPayment(newPaid, amount decimal.Decimal) BillingStatus {
	if newPaid.GreaterThanOrEqual(amount) {
		return BillingStatusPaid
	}
	return BillingStatusPartial
}

// =========================================================
// MODEL
// =========================================================

// StudentBilling: satu kewajiban bayar siswa untuk satu kategori pada satu periode.
// Period "" = tagihan sekali bayar; selain itu token bulan "YYYY-MM".
type StudentBilling struct {
	StudentBillingID             uuid.UUID       `gorm:"column:student_billing_id;type:uuid;primaryKey" json:"student_billing_id"`
	StudentBillingStudentID      uuid.UUID       `gorm:"column:student_billing_student_id;type:uuid;not null;uniqueIndex:uq_student_billings_key,priority:1;index:ix_student_billings_student" json:"student_billing_student_id"`
	StudentBillingFeeCategoryID  uuid.UUID       `gorm:"column:student_billing_fee_category_id;type:uuid;not null;uniqueIndex:uq_student_billings_key,priority:2;index:ix_student_billings_category" json:"student_billing_fee_category_id"`
	StudentBillingAcademicYearID uuid.UUID       `gorm:"column:student_billing_academic_year_id;type:uuid;not null;uniqueIndex:uq_student_billings_key,priority:3" json:"student_billing_academic_year_id"`
	StudentBillingPeriod         string          `gorm:"column:student_billing_period;type:varchar(7);not null;default:'';uniqueIndex:uq_student_billings_key,priority:4" json:"student_billing_period"`
	StudentBillingAmount         decimal.Decimal `gorm:"column:student_billing_amount;type:decimal(12,2);not null" json:"student_billing_amount"`
	StudentBillingPaidAmount     decimal.Decimal `gorm:"column:student_billing_paid_amount;type:decimal(12,2);not null;default:0" json:"student_billing_paid_amount"`
	StudentBillingDueDate        time.Time       `gorm:"column:student_billing_due_date;type:date;not null" json:"student_billing_due_date"`
	StudentBillingStatus         BillingStatus   `gorm:"column:student_billing_status;type:varchar(10);not null;default:'unpaid';index:ix_student_billings_status" json:"student_billing_status"`
	StudentBillingNotes          *string         `gorm:"column:student_billing_notes;type:text" json:"student_billing_notes,omitempty"`

	StudentBillingCreatedAt time.Time `gorm:"column:student_billing_created_at;autoCreateTime" json:"student_billing_created_at"`
	StudentBillingUpdatedAt time.Time `gorm:"column:student_billing_updated_at;autoUpdateTime" json:"student_billing_updated_at"`
}

func (StudentBilling) TableName() string { return "student_billings" }

func (m *StudentBilling) BeforeCreate(tx *gorm.DB) error {
	if m.StudentBillingID == uuid.Nil {
		m.StudentBillingID = uuid.New()
	}
	if m.StudentBillingStatus == "" {
		m.StudentBillingStatus = BillingStatusUnpaid
	}
	return nil
}

// Remaining = amount - paid_amount (negatif bila lebih bayar).
func (m StudentBilling) Remaining() decimal.Decimal {
	return m.StudentBillingAmount.Sub(m.StudentBillingPaidAmount)
}
